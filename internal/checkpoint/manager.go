// Package checkpoint implements the phase-checkpoint lifecycle: promoting
// the runtime cache into a named checkpoint, resetting the milestone cache
// from a checkpoint, and retrying a phase against a checkpoint's state.
//
// All preconditions are validated before any write for the same operation,
// so a failed save or load leaves both the store and the runtime cache
// untouched. Save writes artifacts in a fixed order (state, milestones,
// map data, recording, manifest) so an interrupted save is recoverable by
// re-running it to completion.
package checkpoint

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emerald-agent/phasectl/internal/cachedir"
	"github.com/emerald-agent/phasectl/internal/launch"
	"github.com/emerald-agent/phasectl/internal/logging"
	"github.com/emerald-agent/phasectl/internal/recording"
)

// Manager performs checkpoint operations against one Layout. It assumes
// single-operator, single-process usage: no two operations run concurrently
// against the same cache.
type Manager struct {
	Layout   cachedir.Layout
	Rotator  *recording.Rotator
	Launcher launch.Launcher

	// Stat checks artifact existence during precondition validation.
	// When nil, os.Stat is used. Injectable for tests.
	Stat func(string) (fs.FileInfo, error)

	// Now supplies manifest timestamps. When nil, time.Now is used.
	Now func() time.Time
}

// NewManager returns a Manager over the given layout and rotator.
func NewManager(layout cachedir.Layout, rotator *recording.Rotator) *Manager {
	return &Manager{Layout: layout, Rotator: rotator}
}

func (m *Manager) exists(path string) bool {
	stat := m.Stat
	if stat == nil {
		stat = os.Stat
	}
	_, err := stat(path)
	return err == nil
}

// validatePhaseName layers the rotator's naming constraint on top of the
// layout-level rules: a phase starting with "<prefix>_" would archive its
// recording under a name the rotator treats as live, so a later discard
// would delete the archive.
func (m *Manager) validatePhaseName(phase string) error {
	if err := cachedir.ValidatePhaseName(phase); err != nil {
		return err
	}
	if m.Rotator != nil && strings.HasPrefix(phase, m.Rotator.Prefix+"_") {
		return fmt.Errorf("phase name %q collides with live recordings (%s_*.mp4)", phase, m.Rotator.Prefix)
	}
	return nil
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// SaveResult describes what a successful save produced.
type SaveResult struct {
	SaveID       string
	MapDataSaved bool
	// RecordingSrc is the live recording that was claimed, "" when none
	// existed. RecordingDst is where it was archived.
	RecordingSrc string
	RecordingDst string
}

// Save promotes the runtime cache into the named checkpoint, overwriting any
// previous checkpoint under the same name wholesale.
//
// Both current-cache source artifacts must exist before anything is written;
// otherwise a MissingSourceArtifactError is returned and the store is left
// untouched. Map data is optional. The most recent live recording, if any,
// is copied (not moved) into the checkpoint's recording slot.
func (m *Manager) Save(phase string) (*SaveResult, error) {
	if err := m.validatePhaseName(phase); err != nil {
		return nil, err
	}

	// Preconditions: validate every required source before writing any
	// destination artifact.
	srcState := m.Layout.CurrentState()
	srcMilestones := m.Layout.CurrentMilestones()
	if !m.exists(srcState) {
		return nil, &MissingSourceArtifactError{Path: srcState}
	}
	if !m.exists(srcMilestones) {
		return nil, &MissingSourceArtifactError{Path: srcMilestones}
	}

	if err := copyFile(srcState, m.Layout.PhaseState(phase)); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	if err := copyFile(srcMilestones, m.Layout.PhaseMilestones(phase)); err != nil {
		return nil, fmt.Errorf("save milestones: %w", err)
	}

	result := &SaveResult{SaveID: uuid.NewString()}

	srcMap := m.Layout.CurrentMapData()
	if m.exists(srcMap) {
		if err := copyFile(srcMap, m.Layout.PhaseMapData(phase)); err != nil {
			return nil, fmt.Errorf("save map data: %w", err)
		}
		result.MapDataSaved = true
	} else {
		logging.Debugf("no map data in runtime cache, skipping %s", m.Layout.PhaseMapData(phase))
	}

	recDst := m.Layout.PhaseRecording(phase)
	recSrc, err := m.Rotator.Claim(recDst)
	if err != nil {
		return nil, err
	}
	if recSrc != "" {
		result.RecordingSrc = recSrc
		result.RecordingDst = recDst
	}

	if err := m.writeManifest(phase, result); err != nil {
		return nil, err
	}
	return result, nil
}

// writeManifest records digests of the artifacts just written. Written last:
// a manifest's presence implies the checkpoint is complete.
func (m *Manager) writeManifest(phase string, result *SaveResult) error {
	stateHash, err := HashFile(m.Layout.PhaseState(phase))
	if err != nil {
		return fmt.Errorf("hash state: %w", err)
	}
	milestonesHash, err := HashFile(m.Layout.PhaseMilestones(phase))
	if err != nil {
		return fmt.Errorf("hash milestones: %w", err)
	}

	manifest := &Manifest{
		SaveID:           result.SaveID,
		Phase:            phase,
		SavedAt:          m.now().UTC().Format(time.RFC3339),
		StateSHA256:      stateHash,
		MilestonesSHA256: milestonesHash,
		MapData:          result.MapDataSaved,
	}
	if result.RecordingDst != "" {
		manifest.Recording = result.RecordingDst
	}
	return WriteManifest(manifest, m.Layout.PhaseManifest(phase))
}

// Load resets the live milestone document from the named checkpoint,
// discarding whatever milestone progress the runtime cache held.
//
// The copy is fsynced before Load returns: the agent reads the document once
// at its own startup, so the reset must be durable before any launch. Load
// never touches the current engine state or map data; resuming the actual
// engine state is the launch step's job, pointed at the checkpoint's state
// blob directly.
func (m *Manager) Load(phase string) error {
	if err := m.validatePhaseName(phase); err != nil {
		return err
	}
	if err := m.validateCheckpoint(phase); err != nil {
		return err
	}

	m.verifyManifest(phase)

	src := m.Layout.PhaseMilestones(phase)
	if err := copyFileSync(src, m.Layout.LiveMilestones()); err != nil {
		return fmt.Errorf("reset milestone cache: %w", err)
	}
	logging.Infof("Milestone cache reset from checkpoint %q", phase)
	return nil
}

// validateCheckpoint checks both required checkpoint artifacts
// independently, naming the missing file.
func (m *Manager) validateCheckpoint(phase string) error {
	if p := m.Layout.PhaseState(phase); !m.exists(p) {
		return &CheckpointNotFoundError{Phase: phase, Path: p}
	}
	if p := m.Layout.PhaseMilestones(phase); !m.exists(p) {
		return &CheckpointNotFoundError{Phase: phase, Path: p}
	}
	return nil
}

// verifyManifest warns when the checkpoint's milestone document no longer
// matches the digest recorded at save time. Advisory only: a checkpoint
// without a manifest, or with a stale one, still loads.
func (m *Manager) verifyManifest(phase string) {
	manifestPath := m.Layout.PhaseManifest(phase)
	if !m.exists(manifestPath) {
		return
	}
	manifest, err := ReadManifest(manifestPath)
	if err != nil {
		logging.Warnf("Unreadable manifest %s: %v", manifestPath, err)
		return
	}
	hash, err := HashFile(m.Layout.PhaseMilestones(phase))
	if err != nil {
		return
	}
	if manifest.MilestonesSHA256 != "" && manifest.MilestonesSHA256 != hash {
		logging.Warnf("Checkpoint %q milestones differ from their manifest digest (save %s)", phase, manifest.SaveID)
	}
}

// Retry resets the milestone cache from the named checkpoint, discards the
// stale recording of the failed attempt, and launches a new agent run
// against the checkpoint's state blob. Returns the agent's exit code.
//
// The checkpoint is validated before anything destructive happens: a missing
// checkpoint deletes no recording. Retry never saves progress back; a
// subsequent explicit Save is required.
func (m *Manager) Retry(ctx context.Context, phase, model string, extraArgs []string) (int, error) {
	if err := m.validatePhaseName(phase); err != nil {
		return 0, err
	}
	if err := m.validateCheckpoint(phase); err != nil {
		return 0, err
	}

	if err := m.Load(phase); err != nil {
		return 0, err
	}

	removed, err := m.Rotator.Discard()
	if err != nil {
		return 0, err
	}
	if removed != "" {
		logging.Infof("Removed stale recording %s", removed)
	} else {
		logging.Debug("no stale recording to remove")
	}

	code, err := m.Launcher.Launch(ctx, m.Layout.PhaseState(phase), model, extraArgs)
	if err != nil {
		return 0, err
	}

	logging.Infof("Retry does not save progress back; run 'phasectl save %s' after a successful run", phase)
	return code, nil
}
