package storeapi_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osbuild/osbuild-modules/internal/storeapi"
)

func TestDirectoryBackendScratch(t *testing.T) {
	backend := storeapi.DirectoryBackend{Root: t.TempDir()}

	first, err := backend.AllocateScratch("ostree-input-")
	require.NoError(t, err)
	second, err := backend.AllocateScratch("ostree-input-")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.DirExists(t, first)
	assert.DirExists(t, second)

	g := glob.MustCompile(filepath.Join(backend.Root, "scratch", "ostree-input-*"))
	assert.True(t, g.Match(first))
	assert.True(t, g.Match(second))

	_, err = backend.AllocateScratch("evil/")
	assert.Error(t, err)
}

func TestDirectoryBackendPipelineTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "trees", "ostree-tree"), 0755))

	backend := storeapi.DirectoryBackend{Root: root}

	path, err := backend.PipelineTree("ostree-tree")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "trees", "ostree-tree"), path)

	var notFound storeapi.NotFoundError

	_, err = backend.PipelineTree("missing")
	require.Error(t, err)
	assert.True(t, errors.As(err, &notFound))

	_, err = backend.PipelineTree("..")
	require.Error(t, err)
	assert.True(t, errors.As(err, &notFound))
}

func TestDirectoryBackendSourceCache(t *testing.T) {
	root := t.TempDir()
	backend := storeapi.DirectoryBackend{Root: root}

	path, err := backend.SourceCache("org.osbuild.ostree")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sources", "org.osbuild.ostree"), path)
	assert.DirExists(t, path)

	again, err := backend.SourceCache("org.osbuild.ostree")
	require.NoError(t, err)
	assert.Equal(t, path, again)
}
