// Package banner provides colored banner display functions for the phasectl CLI.
//
// Banners mark checkpoint state transitions: an agent launch starting and a
// checkpoint being archived.
package banner

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// PrintLaunchBanner displays the banner shown before the agent process is
// launched for a retry.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  phasectl - Phase Retry
//	═══════════════════════════════════════════════════
//	  Phase:   phase2
//	  Model:   gemini-2.5-flash
//	  State:   .agent_cache/phase2.state
//	  Run ID:  3f1c...
//	═══════════════════════════════════════════════════
func PrintLaunchBanner(phase, model, statePath, runID string) {
	sep := headerColor("═══════════════════════════════════════════════════")
	fmt.Println(sep)
	fmt.Println(headerColor("  phasectl - Phase Retry"))
	fmt.Println(sep)
	fmt.Printf("  Phase:   %s\n", phase)
	fmt.Printf("  Model:   %s\n", model)
	fmt.Printf("  State:   %s\n", statePath)
	fmt.Printf("  Run ID:  %s\n", runID)
	fmt.Println(sep)
}

// PrintSavedBanner displays the confirmation banner after a successful save.
//
// recording is the archived recording path, or "" when no recording was
// captured.
func PrintSavedBanner(phase, saveID, recording string) {
	sep := successColor("═══════════════════════════════════════════════════")
	fmt.Println(sep)
	fmt.Println(successColor(fmt.Sprintf("  ✓ Checkpoint %q saved", phase)))
	fmt.Printf("  Save ID:    %s\n", saveID)
	if recording != "" {
		fmt.Printf("  Recording:  %s\n", recording)
	} else {
		fmt.Println("  Recording:  (none captured)")
	}
	fmt.Println(sep)
}
