package cachedir

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutPaths(t *testing.T) {
	l := NewLayout("cache", "work")

	assert.Equal(t, filepath.Join("cache", "checkpoint.state"), l.CurrentState())
	assert.Equal(t, filepath.Join("cache", "checkpoint_milestones.json"), l.CurrentMilestones())
	assert.Equal(t, filepath.Join("cache", "checkpoint_map_stitcher.json"), l.CurrentMapData())
	assert.Equal(t, filepath.Join("cache", "milestones_progress.json"), l.LiveMilestones())

	assert.Equal(t, filepath.Join("cache", "phase1.state"), l.PhaseState("phase1"))
	assert.Equal(t, filepath.Join("cache", "phase1_milestones.json"), l.PhaseMilestones("phase1"))
	assert.Equal(t, filepath.Join("cache", "phase1_map_stitcher.json"), l.PhaseMapData("phase1"))
	assert.Equal(t, filepath.Join("cache", "phase1_manifest.json"), l.PhaseManifest("phase1"))
	assert.Equal(t, filepath.Join("work", "phase1.mp4"), l.PhaseRecording("phase1"))
}

func TestEnsureCacheDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	l := NewLayout(dir, ".")
	require.NoError(t, l.EnsureCacheDir())
	assert.DirExists(t, dir)

	// Idempotent on an existing directory.
	require.NoError(t, l.EnsureCacheDir())
}

func TestValidatePhaseName(t *testing.T) {
	tests := []struct {
		name    string
		phase   string
		wantErr bool
	}{
		{name: "simple", phase: "phase1", wantErr: false},
		{name: "with underscore and dash", phase: "phase_2-retry", wantErr: false},
		{name: "empty", phase: "", wantErr: true},
		{name: "forward slash", phase: "a/b", wantErr: true},
		{name: "backslash", phase: `a\b`, wantErr: true},
		{name: "parent reference", phase: "..", wantErr: true},
		{name: "reserved runtime cache stem", phase: "checkpoint", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhaseName(tt.phase)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
