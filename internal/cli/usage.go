package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `phasectl - Phase checkpoint manager for the game agent

USAGE
  phasectl <command> [flags]

COMMANDS
  save <phase>                             Save the runtime cache as a named checkpoint
  load <phase>                             Reset the milestone cache from a checkpoint
  retry <phase> [--model-name M] [args..]  Reset, rotate the stale recording, relaunch the agent
  list                                     List saved checkpoints

GLOBAL FLAGS
  --cache-dir <path>            Checkpoint store and runtime cache directory (default: .agent_cache)
  --recording-dir <path>        Directory holding live recordings (default: .)
  --recording-prefix <prefix>   Live recordings match <prefix>_*.mp4 (default: recording)
  --agent-command <cmd>         Agent launch command (default: python agent/main.py)
  --config <path>               Path to additional config file
  -v, --verbose                 Enable debug output
  -h, --help                    Show this help text
  --version                     Show version, commit, build date

RETRY FLAGS
  --model-name <model>          Model override for the relaunched run; every
                                other retry argument is passed to the agent
                                verbatim, order preserved

EXIT CODES
  0   Success       Operation completed
  1   Error         Missing artifact, invalid arguments, misconfiguration
  130 Interrupted   SIGINT or SIGTERM received during an agent launch

  retry otherwise exits with the agent process's own exit code.

EXAMPLES
  # Archive the current run as phase2
  phasectl save phase2

  # Reset milestones before manually launching against phase2's state
  phasectl load phase2

  # Retry phase2 with a different model, forwarding extra agent flags
  phasectl retry phase2 --model-name gemini-2.5-pro --headless --max-steps 500
`

// SetCustomHelp configures the cobra command to use our custom help template.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
