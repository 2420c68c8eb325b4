package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phase1_manifest.json")
	in := &Manifest{
		SaveID:           "b5c7f8e0-0000-4000-8000-000000000000",
		Phase:            "phase1",
		SavedAt:          "2026-08-26T12:00:00Z",
		StateSHA256:      "aa",
		MilestonesSHA256: "bb",
		MapData:          true,
		Recording:        "phase1.mp4",
	}

	require.NoError(t, WriteManifest(in, path))
	out, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadManifestErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadManifest(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = ReadManifest(bad)
	assert.Error(t, err)
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	got, err := HashFile(path)
	require.NoError(t, err)
	// sha256("hello")
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", got)

	_, err = HashFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
