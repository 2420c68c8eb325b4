package checkpoint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// Manifest records what a save produced. It is written last, after every
// checkpoint artifact, so its presence implies a complete checkpoint.
// Load and retry use the milestone digest as an integrity check and warn
// (never fail) on mismatch.
type Manifest struct {
	SaveID           string `json:"save_id"`
	Phase            string `json:"phase"`
	SavedAt          string `json:"saved_at"`
	StateSHA256      string `json:"state_sha256"`
	MilestonesSHA256 string `json:"milestones_sha256"`
	MapData          bool   `json:"map_data"`
	Recording        string `json:"recording,omitempty"`
}

// WriteManifest persists the manifest as indented JSON.
func WriteManifest(m *Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads and parses a checkpoint manifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// HashFile returns the lowercase hexadecimal SHA-256 digest of the entire
// contents of path.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
