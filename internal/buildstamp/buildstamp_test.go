package buildstamp_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"github.com/osbuild/osbuild-modules/internal/buildstamp"
)

func TestWrite(t *testing.T) {
	restore := buildstamp.MockTimeNow(func() time.Time {
		return time.Date(2023, 6, 12, 13, 37, 42, 0, time.UTC)
	})
	defer restore()

	tree := t.TempDir()
	stamp := buildstamp.Stamp{
		Arch:    "x86_64",
		Product: "Fedora-IoT",
		Version: "38",
		Final:   true,
		Variant: "iot",
		BugURL:  "https://bugzilla.redhat.com",
	}
	require.NoError(t, stamp.Write(tree))

	file, err := ini.Load(filepath.Join(tree, buildstamp.Filename))
	require.NoError(t, err)

	main := file.Section("Main")
	assert.Equal(t, "Fedora-IoT", main.Key("product").String())
	assert.Equal(t, "38", main.Key("version").String())
	assert.Equal(t, "true", main.Key("isfinal").String())
	assert.Equal(t, "202306121337.x86_64", main.Key("uuid").String())
	assert.Equal(t, "iot", main.Key("variant").String())
	assert.Equal(t, "https://bugzilla.redhat.com", main.Key("bugurl").String())

	assert.Equal(t, "devel", file.Section("Compose").Key("osbuild").String())
}

func TestWriteMinimal(t *testing.T) {
	tree := t.TempDir()
	stamp := buildstamp.Stamp{
		Arch:    "aarch64",
		Product: "Fedora-IoT",
		Version: "38",
	}
	require.NoError(t, stamp.Write(tree))

	file, err := ini.Load(filepath.Join(tree, buildstamp.Filename))
	require.NoError(t, err)

	main := file.Section("Main")
	assert.Equal(t, "false", main.Key("isfinal").String())
	assert.False(t, main.HasKey("variant"))
	assert.False(t, main.HasKey("bugurl"))

	id := main.Key("uuid").String()
	assert.True(t, strings.HasSuffix(id, ".aarch64"), id)
	assert.Len(t, id, len("200601021504.aarch64"))
}

func TestBuildID(t *testing.T) {
	restore := buildstamp.MockTimeNow(func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	})
	defer restore()

	stamp := buildstamp.Stamp{Arch: "x86_64"}
	assert.Equal(t, "202601020304.x86_64", stamp.BuildID())
}

func TestValidate(t *testing.T) {
	valid := buildstamp.Stamp{Arch: "x86_64", Product: "Fedora", Version: "38"}
	assert.NoError(t, valid.Validate())

	testCases := map[string]buildstamp.Stamp{
		"no-arch":    {Product: "Fedora", Version: "38"},
		"no-product": {Arch: "x86_64", Version: "38"},
		"no-version": {Arch: "x86_64", Product: "Fedora"},
	}
	for name, stamp := range testCases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, stamp.Validate())
			require.Error(t, stamp.Write(t.TempDir()))
		})
	}
}
