// Package cachedir defines the on-disk layout of the checkpoint store and
// the runtime cache.
//
// A Layout is an explicit handle to one cache directory plus one recording
// directory. Every path the checkpoint subsystem touches is derived from a
// Layout value, so tests can run independent caches side by side.
package cachedir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Runtime-cache file names. The agent process writes checkpoint.state and
// checkpoint_milestones.json during a run and reads milestones_progress.json
// exactly once at startup.
const (
	currentStateFile      = "checkpoint.state"
	currentMilestonesFile = "checkpoint_milestones.json"
	currentMapDataFile    = "checkpoint_map_stitcher.json"
	liveMilestonesFile    = "milestones_progress.json"
)

// Layout locates the checkpoint store, the runtime cache and the recording
// directory. The zero value is not usable; construct with NewLayout.
type Layout struct {
	// CacheDir holds the runtime cache and every named checkpoint.
	CacheDir string
	// RecordingDir is where the agent drops recordings and where archived
	// per-phase recordings live. Usually the working directory.
	RecordingDir string
}

// NewLayout returns a Layout rooted at the given directories.
func NewLayout(cacheDir, recordingDir string) Layout {
	return Layout{CacheDir: cacheDir, RecordingDir: recordingDir}
}

// CurrentState returns the path of the runtime cache's engine-state blob.
func (l Layout) CurrentState() string {
	return filepath.Join(l.CacheDir, currentStateFile)
}

// CurrentMilestones returns the path of the runtime cache's milestone document.
func (l Layout) CurrentMilestones() string {
	return filepath.Join(l.CacheDir, currentMilestonesFile)
}

// CurrentMapData returns the path of the runtime cache's map-stitcher document.
func (l Layout) CurrentMapData() string {
	return filepath.Join(l.CacheDir, currentMapDataFile)
}

// LiveMilestones returns the path of the live milestone document the agent
// reads at startup and mutates during a run.
func (l Layout) LiveMilestones() string {
	return filepath.Join(l.CacheDir, liveMilestonesFile)
}

// PhaseState returns the path of a named checkpoint's engine-state blob.
func (l Layout) PhaseState(phase string) string {
	return filepath.Join(l.CacheDir, phase+".state")
}

// PhaseMilestones returns the path of a named checkpoint's milestone document.
func (l Layout) PhaseMilestones(phase string) string {
	return filepath.Join(l.CacheDir, phase+"_milestones.json")
}

// PhaseMapData returns the path of a named checkpoint's map-stitcher document.
func (l Layout) PhaseMapData(phase string) string {
	return filepath.Join(l.CacheDir, phase+"_map_stitcher.json")
}

// PhaseManifest returns the path of a named checkpoint's manifest.
func (l Layout) PhaseManifest(phase string) string {
	return filepath.Join(l.CacheDir, phase+"_manifest.json")
}

// PhaseRecording returns the path of a named checkpoint's archived recording,
// kept in the recording directory next to the live recordings. The checkpoint
// manager rejects phase names that would make this path match the
// live-recording naming pattern.
func (l Layout) PhaseRecording(phase string) string {
	return filepath.Join(l.RecordingDir, phase+".mp4")
}

// EnsureCacheDir creates the cache directory if it doesn't exist.
func (l Layout) EnsureCacheDir() error {
	return os.MkdirAll(l.CacheDir, 0755)
}

// ValidatePhaseName rejects names that are empty, reserved, or would escape
// the cache directory when joined into an artifact path. "checkpoint" is
// reserved: its artifact paths are the runtime cache's own source files, so
// saving under that name would truncate the cache it is copying from.
func ValidatePhaseName(phase string) error {
	if phase == "" {
		return fmt.Errorf("phase name must not be empty")
	}
	if phase == "." || phase == ".." || phase == "checkpoint" {
		return fmt.Errorf("phase name %q is reserved", phase)
	}
	if strings.ContainsAny(phase, `/\`) || phase != filepath.Base(phase) {
		return fmt.Errorf("phase name %q must not contain path separators", phase)
	}
	return nil
}
