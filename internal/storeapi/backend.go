package storeapi

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Backend answers the store queries served by a Server.
type Backend interface {
	// AllocateScratch creates a fresh private directory and returns its
	// absolute path. The prefix is used as a name hint.
	AllocateScratch(prefix string) (string, error)

	// PipelineTree returns the path of the output tree of a previously
	// built pipeline. A NotFoundError is returned when the store holds no
	// tree for the id.
	PipelineTree(id string) (string, error)

	// SourceCache returns the path of the cache directory for a source
	// kind, creating it on first use.
	SourceCache(kind string) (string, error)
}

// DirectoryBackend is a Backend laid out under a single root directory:
// scratch directories under <root>/scratch, pipeline trees under
// <root>/trees/<id> and source caches under <root>/sources/<kind>.
type DirectoryBackend struct {
	Root string
}

// names passed to the backend are single path elements, never navigation
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsRune(name, '/')
}

func (b *DirectoryBackend) AllocateScratch(prefix string) (string, error) {
	if strings.ContainsRune(prefix, '/') {
		return "", fmt.Errorf("invalid scratch prefix %q", prefix)
	}

	dir := filepath.Join(b.Root, "scratch")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, prefix+uuid.New().String())
	if err := os.Mkdir(path, 0755); err != nil {
		return "", err
	}
	return path, nil
}

func (b *DirectoryBackend) PipelineTree(id string) (string, error) {
	if !validName(id) {
		return "", NewNotFoundError("no tree for pipeline %q", id)
	}

	path := filepath.Join(b.Root, "trees", id)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", NewNotFoundError("no tree for pipeline %q", id)
		}
		return "", err
	}
	if !info.IsDir() {
		return "", NewNotFoundError("no tree for pipeline %q", id)
	}
	return path, nil
}

func (b *DirectoryBackend) SourceCache(kind string) (string, error) {
	if !validName(kind) {
		return "", NewNotFoundError("no cache for source %q", kind)
	}

	path := filepath.Join(b.Root, "sources", kind)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", err
	}
	return path, nil
}
