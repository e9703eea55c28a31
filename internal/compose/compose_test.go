package compose_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osbuild/osbuild-modules/internal/compose"
)

func TestRead(t *testing.T) {
	tree := t.TempDir()
	doc := `{
		"ref": "fedora/38/x86_64/iot",
		"ostree-n-metadata-total": 12,
		"ostree-n-metadata-written": 8,
		"ostree-n-content-total": 1024,
		"ostree-n-content-written": 1024,
		"ostree-n-cache-hits": 0,
		"ostree-content-bytes-written": 42687433,
		"ostree-commit": "439911d45e64f736ee3410facef4fd5d11b8b94e63536a0a6a95f0f7e9c4050e",
		"ostree-content-checksum": "2b70588bb3127bd42ba1dbbc7cfd0ecc5330bb1b8820944567f519de66ad6354",
		"ostree-timestamp": "2023-06-12T13:37:00Z",
		"rpm-ostree-inputhash": "7f5a2173a7cb86e8a37a6a40eb92bdaf73b481cdbc5a19cf03536ab24ad1depp"
	}`
	require.NoError(t, os.WriteFile(filepath.Join(tree, compose.Filename), []byte(doc), 0600))

	metadata, err := compose.Read(tree)
	require.NoError(t, err)
	assert.Equal(t, "439911d45e64f736ee3410facef4fd5d11b8b94e63536a0a6a95f0f7e9c4050e", metadata.OSTreeCommit)
	assert.Equal(t, "fedora/38/x86_64/iot", metadata.Ref)
	assert.Equal(t, 12, metadata.OSTreeNMetadataTotal)
	assert.Equal(t, "2023-06-12T13:37:00Z", metadata.OSTreeTimestamp)
}

func TestReadMissing(t *testing.T) {
	metadata, err := compose.Read(t.TempDir())
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
	assert.Nil(t, metadata)
}

func TestReadMalformed(t *testing.T) {
	tree := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tree, compose.Filename), []byte("{not json"), 0600))

	metadata, err := compose.Read(tree)
	require.Error(t, err)
	assert.False(t, os.IsNotExist(err))
	assert.Contains(t, err.Error(), compose.Filename)
	assert.Nil(t, metadata)
}

func TestReadNoCommit(t *testing.T) {
	tree := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tree, compose.Filename), []byte(`{"ref": "r"}`), 0600))

	metadata, err := compose.Read(tree)
	require.NoError(t, err)
	assert.Empty(t, metadata.OSTreeCommit)
}
