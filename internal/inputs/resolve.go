package inputs

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/osbuild/osbuild-modules/internal/compose"
	"github.com/osbuild/osbuild-modules/internal/ostree"
)

// StoreClient is the part of the store API the resolver needs.
type StoreClient interface {
	AllocateScratch(ctx context.Context, prefix string) (string, error)
	ResolvePipelineTree(ctx context.Context, id string) (string, error)
	ResolveSourceCache(ctx context.Context, kind string) (string, error)
}

// RepoOps are the repository primitives the resolver drives. *ostree.CLI
// implements them.
type RepoOps interface {
	Init(path string, mode ostree.Mode) error
	PullLocal(repo, source, commit string) error
	CreateRef(repo, name, commit string) error
}

// Reply describes the repository a request was materialized into. Refs maps
// every copied commit id to the options it was requested with.
type Reply struct {
	Path string    `json:"path"`
	Data ReplyData `json:"data"`
}

type ReplyData struct {
	Refs map[string]Options `json:"refs"`
}

// Resolver materializes the commits named by a request into a fresh
// archive repository allocated from the store.
type Resolver struct {
	store StoreClient
	repo  RepoOps
}

func NewResolver(store StoreClient, repo RepoOps) *Resolver {
	return &Resolver{
		store: store,
		repo:  repo,
	}
}

// scratchPrefix is the name hint for the scratch directory that holds the
// destination repository.
const scratchPrefix = "ostree-input-"

// unit is one commit to materialize: where it comes from and what to do
// with it.
type unit struct {
	commit  string
	options Options
	cache   string
}

// Resolve carries out a request. Every reference is first resolved to a
// commit held by a repository in the store; only when all of them resolve
// is the destination repository created and filled. On error no reply is
// returned, partial results stay behind in the scratch directory.
func (r *Resolver) Resolve(ctx context.Context, request *Request) (*Reply, error) {
	if err := request.validate(); err != nil {
		return nil, err
	}

	units, err := r.resolveOrigins(ctx, request)
	if err != nil {
		return nil, err
	}

	return r.materialize(ctx, units)
}

func (r *Resolver) resolveOrigins(ctx context.Context, request *Request) ([]unit, error) {
	units := make([]unit, 0, len(request.Refs))

	switch request.Origin {
	case OriginSource:
		cache, err := r.store.ResolveSourceCache(ctx, SourceKind)
		if err != nil {
			return nil, NewStoreUnavailableError("source cache for %s: %v", SourceKind, err)
		}

		for _, ref := range request.Refs {
			units = append(units, unit{
				commit:  ref.Key,
				options: ref.Options,
				cache:   filepath.Join(cache, "repo"),
			})
		}

	case OriginPipeline:
		for _, ref := range request.Refs {
			tree, err := r.store.ResolvePipelineTree(ctx, ref.Key)
			if err != nil {
				return nil, NewStoreUnavailableError("tree for pipeline %q: %v", ref.Key, err)
			}

			metadata, err := compose.Read(tree)
			if err != nil {
				return nil, NewMissingComposeMetadataError("pipeline %q: %v", ref.Key, err)
			}
			if metadata.OSTreeCommit == "" {
				return nil, NewMissingComposeMetadataError("pipeline %q recorded no commit id", ref.Key)
			}

			units = append(units, unit{
				commit:  metadata.OSTreeCommit,
				options: ref.Options,
				cache:   filepath.Join(tree, "repo"),
			})
		}
	}

	return units, nil
}

func (r *Resolver) materialize(ctx context.Context, units []unit) (*Reply, error) {
	scratch, err := r.store.AllocateScratch(ctx, scratchPrefix)
	if err != nil {
		return nil, NewStoreUnavailableError("allocating scratch directory: %v", err)
	}

	dest := filepath.Join(scratch, "repo")
	if err := r.repo.Init(dest, ostree.ModeArchive); err != nil {
		return nil, NewTransferFailureError("initializing repository at %s: %v", dest, err)
	}

	refs := make(map[string]Options, len(units))
	created := make(map[string]string)

	for _, u := range units {
		logrus.Infof("pulling %s", u.commit)
		if err := r.repo.PullLocal(dest, u.cache, u.commit); err != nil {
			return nil, NewTransferFailureError("pulling %s from %s: %v", u.commit, u.cache, err)
		}

		if name := u.options.Ref; name != "" {
			if !ostree.VerifyRef(name) {
				return nil, NewTransferFailureError("invalid ref name %q for commit %s", name, u.commit)
			}

			if target, ok := created[name]; ok {
				if target != u.commit {
					return nil, NewTransferFailureError("ref %q requested for both %s and %s", name, target, u.commit)
				}
			} else {
				if err := r.repo.CreateRef(dest, name, u.commit); err != nil {
					return nil, NewTransferFailureError("creating ref %q for %s: %v", name, u.commit, err)
				}
				created[name] = u.commit
			}
		}

		refs[u.commit] = u.options
	}

	return &Reply{
		Path: dest,
		Data: ReplyData{Refs: refs},
	}, nil
}
