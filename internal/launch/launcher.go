// Package launch starts the external agent process against a checkpoint's
// engine-state blob.
//
// The agent is an external collaborator: phasectl hands it a state path, a
// model identifier and any pass-through arguments, inherits its output
// streams, and propagates its exit code without interpreting either.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"

	"github.com/emerald-agent/phasectl/internal/logging"
)

// Launcher starts an agent run. Implementations return the process exit code
// once the run has finished; the error is reserved for failures to start the
// process at all.
type Launcher interface {
	Launch(ctx context.Context, statePath, model string, extraArgs []string) (int, error)
}

// RunIDEnvVar names the environment variable carrying the run identifier
// into the agent process.
const RunIDEnvVar = "PHASECTL_RUN_ID"

// AgentLauncher implements Launcher by executing the configured agent
// command.
type AgentLauncher struct {
	// Command is the agent command line, split on whitespace. The first
	// token is the executable, the rest are leading arguments.
	Command string

	// RunID identifies this launch. Generated when empty.
	RunID string
}

// BuildArgs constructs the executable name and argument list for an agent
// launch. Extra arguments are appended verbatim, preserving their order.
func (l *AgentLauncher) BuildArgs(statePath, model string, extraArgs []string) (string, []string, error) {
	fields := strings.Fields(l.Command)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("agent command is empty")
	}

	args := append([]string{}, fields[1:]...)
	args = append(args, "--load-state", statePath, "--model-name", model)
	args = append(args, extraArgs...)
	return fields[0], args, nil
}

// Launch runs the agent process to completion, inheriting stdin, stdout and
// stderr. Returns the agent's exit code; a non-nil error means the process
// could not be started.
func (l *AgentLauncher) Launch(ctx context.Context, statePath, model string, extraArgs []string) (int, error) {
	name, args, err := l.BuildArgs(statePath, model, extraArgs)
	if err != nil {
		return 0, err
	}

	runID := l.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), RunIDEnvVar+"="+runID)

	logging.Debugf("launching agent run %s: %s %s", runID, name, strings.Join(args, " "))

	runErr := cmd.Run()
	if runErr == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("launch agent: %w", runErr)
}
