package notification

import "fmt"

// Event types for checkpoint lifecycle notifications.
const (
	EventSaved       = "saved"
	EventRetryDone   = "retry_done"
	EventInterrupted = "interrupted"
)

// FormatEvent creates a notification message for the given event.
func FormatEvent(event string, phase string, exitCode int) string {
	switch event {
	case EventSaved:
		return fmt.Sprintf("✅ checkpoint %q saved", phase)
	case EventRetryDone:
		return fmt.Sprintf("🔁 retry of %q finished (agent exit %d)", phase, exitCode)
	case EventInterrupted:
		return fmt.Sprintf("⏸️ retry of %q interrupted (exit %d)", phase, exitCode)
	default:
		return fmt.Sprintf("ℹ️ %q event: %s (exit %d)", phase, event, exitCode)
	}
}
