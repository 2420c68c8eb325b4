package checkpoint

import "fmt"

// MissingSourceArtifactError indicates a required runtime-cache file was
// absent when save was invoked. Not retryable until the agent has produced
// the artifact.
type MissingSourceArtifactError struct {
	Path string
}

func (e *MissingSourceArtifactError) Error() string {
	return fmt.Sprintf("missing source artifact %s: run the agent to produce it before saving", e.Path)
}

// CheckpointNotFoundError indicates a required named-checkpoint file was
// absent when load or retry was invoked. Each missing artifact produces its
// own error naming the file.
type CheckpointNotFoundError struct {
	Phase string
	Path  string
}

func (e *CheckpointNotFoundError) Error() string {
	return fmt.Sprintf("checkpoint %q not found: missing %s (save it first with 'phasectl save %s')", e.Phase, e.Path, e.Phase)
}
