// Package exitcode defines named exit codes for the phasectl CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by shell scripts and wrappers. The retry command is special:
// once the agent process has been launched, its own exit code is propagated
// verbatim, so any value may surface to the shell.
package exitcode

// Exit code constants for phasectl's own termination conditions.
const (
	Success     = 0   // Operation completed
	Error       = 1   // Missing artifact, invalid args, misconfiguration
	Interrupted = 130 // SIGINT/SIGTERM received during an agent launch
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
