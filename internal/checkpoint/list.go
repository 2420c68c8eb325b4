package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Info summarizes one saved checkpoint for display.
type Info struct {
	Phase          string
	StateSize      int64
	SavedAt        time.Time
	MilestoneCount int // -1 when the document isn't a JSON object
	HasMapData     bool
	HasRecording   bool
	Complete       bool // both required artifacts present
}

// List enumerates named checkpoints in the store, sorted by phase name.
// A checkpoint is discovered by its state blob; one missing its milestone
// document is reported with Complete=false rather than hidden.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.Layout.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("list cache dir: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".state") {
			continue
		}
		phase := strings.TrimSuffix(name, ".state")
		if m.Layout.PhaseState(phase) == m.Layout.CurrentState() {
			// The runtime cache's own blob, not a named checkpoint.
			continue
		}

		stat, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}

		info := Info{
			Phase:          phase,
			StateSize:      stat.Size(),
			SavedAt:        stat.ModTime(),
			MilestoneCount: -1,
			HasMapData:     m.exists(m.Layout.PhaseMapData(phase)),
			HasRecording:   m.exists(m.Layout.PhaseRecording(phase)),
			Complete:       m.exists(m.Layout.PhaseMilestones(phase)),
		}

		if info.Complete {
			info.MilestoneCount = countMilestones(m.Layout.PhaseMilestones(phase))
		}
		if manifestPath := m.Layout.PhaseManifest(phase); m.exists(manifestPath) {
			if manifest, err := ReadManifest(manifestPath); err == nil {
				if t, err := time.Parse(time.RFC3339, manifest.SavedAt); err == nil {
					info.SavedAt = t
				}
			}
		}

		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Phase < infos[j].Phase })
	return infos, nil
}

// countMilestones returns the number of top-level entries in the milestone
// document, or -1 when the document isn't a JSON object or array. The
// document is otherwise opaque to this subsystem.
func countMilestones(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return -1
	}
	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(data, &asObject); err == nil {
		return len(asObject)
	}
	var asArray []json.RawMessage
	if err := json.Unmarshal(data, &asArray); err == nil {
		return len(asArray)
	}
	return -1
}
