package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/emerald-agent/phasectl/internal/banner"
	"github.com/emerald-agent/phasectl/internal/cachedir"
	"github.com/emerald-agent/phasectl/internal/checkpoint"
	"github.com/emerald-agent/phasectl/internal/cli"
	"github.com/emerald-agent/phasectl/internal/config"
	"github.com/emerald-agent/phasectl/internal/exitcode"
	"github.com/emerald-agent/phasectl/internal/launch"
	"github.com/emerald-agent/phasectl/internal/logging"
	"github.com/emerald-agent/phasectl/internal/notification"
	"github.com/emerald-agent/phasectl/internal/recording"
	sighandler "github.com/emerald-agent/phasectl/internal/signal"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootFlags holds CLI flag values before config precedence is applied.
// Only flags the user explicitly set become overrides.
type rootFlags struct {
	cacheDir        string
	recordingDir    string
	recordingPrefix string
	agentCommand    string
	configFile      string
	verbose         bool
}

func main() {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:     "phasectl",
		Short:   "Phase checkpoint manager for the game agent",
		Long:    "phasectl saves, restores and retries phase checkpoints (engine state + milestone progress) for the autonomous game agent.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.cacheDir, "cache-dir", ".agent_cache", "Checkpoint store and runtime cache directory")
	pf.StringVar(&flags.recordingDir, "recording-dir", ".", "Directory holding live recordings")
	pf.StringVar(&flags.recordingPrefix, "recording-prefix", "recording", "Live recordings match <prefix>_*.mp4")
	pf.StringVar(&flags.agentCommand, "agent-command", "python agent/main.py", "Agent launch command")
	pf.StringVar(&flags.configFile, "config", "", "Path to additional config file")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug output")

	cli.SetCustomHelp(rootCmd)

	rootCmd.AddCommand(
		newSaveCmd(flags),
		newLoadCmd(flags),
		newRetryCmd(flags),
		newListCmd(flags),
	)

	if err := rootCmd.Execute(); err != nil {
		logging.Error(err.Error())
		os.Exit(exitcode.Error)
	}
}

// loadConfig assembles the effective config: defaults, config files, the
// environment, then explicitly-set CLI flags on top.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	overrides := make(map[string]string)
	pf := cmd.Root().PersistentFlags()

	if pf.Changed("cache-dir") {
		overrides["CACHE_DIR"] = flags.cacheDir
	}
	if pf.Changed("recording-dir") {
		overrides["RECORDING_DIR"] = flags.recordingDir
	}
	if pf.Changed("recording-prefix") {
		overrides["RECORDING_PREFIX"] = flags.recordingPrefix
	}
	if pf.Changed("agent-command") {
		overrides["AGENT_COMMAND"] = flags.agentCommand
	}
	if pf.Changed("verbose") {
		if flags.verbose {
			overrides["VERBOSE"] = "true"
		} else {
			overrides["VERBOSE"] = "false"
		}
	}

	cfg, err := config.LoadWithPrecedence(config.GlobalConfigPath(), config.ProjectConfigFile, flags.configFile, overrides)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ConfigFile = flags.configFile

	logging.SetVerbose(cfg.Verbose)
	return cfg, nil
}

func newManager(cfg *config.Config) (*checkpoint.Manager, cachedir.Layout, error) {
	layout := cachedir.NewLayout(cfg.CacheDir, cfg.RecordingDir)
	if err := layout.EnsureCacheDir(); err != nil {
		return nil, layout, fmt.Errorf("create cache dir: %w", err)
	}
	rotator := recording.NewRotator(cfg.RecordingDir, cfg.RecordingPrefix)
	return checkpoint.NewManager(layout, rotator), layout, nil
}

func newSaveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "save <phase>",
		Short: "Save the runtime cache as a named checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			mgr, _, err := newManager(cfg)
			if err != nil {
				return err
			}

			phase := args[0]
			result, err := mgr.Save(phase)
			if err != nil {
				return err
			}

			if result.RecordingSrc != "" {
				logging.Infof("Archived recording %s as %s", result.RecordingSrc, result.RecordingDst)
			} else {
				logging.Warn("No recording captured for this run segment")
			}
			if result.MapDataSaved {
				logging.Debugf("map data saved alongside checkpoint %q", phase)
			}

			banner.PrintSavedBanner(phase, result.SaveID, result.RecordingDst)
			notification.SendNotification(cfg.NotifyWebhook, cfg.NotifyChannel, cfg.NotifyChatID,
				notification.FormatEvent(notification.EventSaved, phase, exitcode.Success))
			return nil
		},
	}
}

func newLoadCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "load <phase>",
		Short: "Reset the milestone cache from a named checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			mgr, layout, err := newManager(cfg)
			if err != nil {
				return err
			}

			phase := args[0]
			if err := mgr.Load(phase); err != nil {
				return err
			}

			logging.Successf("Checkpoint %q loaded", phase)
			logging.Infof("Launch the agent with: %s --load-state %s", cfg.AgentCommand, layout.PhaseState(phase))
			return nil
		},
	}
}

func newRetryCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retry <phase> [--model-name MODEL] [agent args...]",
		Short: "Reset milestones, rotate the stale recording, relaunch the agent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			mgr, layout, err := newManager(cfg)
			if err != nil {
				return err
			}

			phase := args[0]
			model, passthrough, err := cli.SplitRetryTail(args[1:])
			if err != nil {
				return err
			}
			if model == "" {
				model = cfg.ModelName
			}

			runID := uuid.NewString()
			mgr.Launcher = &launch.AgentLauncher{Command: cfg.AgentCommand, RunID: runID}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			sighandler.SetupSignalHandler(ctx, cancel, func() {
				logging.Warn("Interrupted — stopping agent...")
			})

			banner.PrintLaunchBanner(phase, model, layout.PhaseState(phase), runID)

			code, err := mgr.Retry(ctx, phase, model, passthrough)
			if err != nil {
				return err
			}

			if ctx.Err() != nil {
				notification.SendNotification(cfg.NotifyWebhook, cfg.NotifyChannel, cfg.NotifyChatID,
					notification.FormatEvent(notification.EventInterrupted, phase, exitcode.Interrupted))
				os.Exit(exitcode.Interrupted)
			}
			if code < 0 {
				// Signal-killed child without a usable exit status.
				code = exitcode.Error
			}

			notification.SendNotification(cfg.NotifyWebhook, cfg.NotifyChannel, cfg.NotifyChatID,
				notification.FormatEvent(notification.EventRetryDone, phase, code))
			if code != exitcode.Success {
				os.Exit(code)
			}
			return nil
		},
	}
	// Stop flag parsing at the first positional argument so the tail after
	// the phase name reaches the agent untouched.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved checkpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			mgr, _, err := newManager(cfg)
			if err != nil {
				return err
			}

			infos, err := mgr.List()
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				logging.Info("No checkpoints saved yet")
				return nil
			}

			fmt.Printf("%-20s %12s %11s %5s %5s %9s  %s\n",
				"PHASE", "STATE BYTES", "MILESTONES", "MAP", "REC", "COMPLETE", "AGE")
			for _, info := range infos {
				milestones := "-"
				if info.MilestoneCount >= 0 {
					milestones = fmt.Sprintf("%d", info.MilestoneCount)
				}
				age := logging.FormatDuration(int(time.Since(info.SavedAt).Seconds()))
				fmt.Printf("%-20s %12d %11s %5s %5s %9s  %s\n",
					info.Phase, info.StateSize, milestones,
					yesNo(info.HasMapData), yesNo(info.HasRecording), yesNo(info.Complete), age)
			}
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
