// Package config defines the phasectl configuration model and default values.
//
// Configuration is assembled from multiple sources with a strict precedence
// chain: built-in defaults < global config file < project config file <
// explicit config file < environment variables < CLI flag overrides.
package config

import (
	"os"
	"path/filepath"
)

// WhitelistedVars lists every configuration variable name that may appear in
// config files or the environment. Variables not in this list are silently
// ignored during loading.
var WhitelistedVars = [9]string{
	"CACHE_DIR",
	"RECORDING_DIR",
	"RECORDING_PREFIX",
	"AGENT_COMMAND",
	"MODEL_NAME",
	"VERBOSE",
	"NOTIFY_WEBHOOK",
	"NOTIFY_CHANNEL",
	"NOTIFY_CHAT_ID",
}

// ProjectConfigFile is the per-checkout config file name, looked up in the
// working directory.
const ProjectConfigFile = ".phasectl.conf"

// Config holds every configuration field for the phasectl CLI.
type Config struct {
	// Directories.
	CacheDir     string
	RecordingDir string

	// Recording artifact naming: live recordings match <prefix>_*.mp4.
	RecordingPrefix string

	// Agent launch. AgentCommand is split on whitespace; the first token is
	// the executable, the rest are leading arguments.
	AgentCommand string
	ModelName    string

	// Runtime flags.
	Verbose bool

	// Notification settings. Notifications are disabled while NotifyChatID
	// is empty.
	NotifyWebhook string
	NotifyChannel string
	NotifyChatID  string

	// CLI-only flags (not loaded from config files).
	ConfigFile string
}

// NewDefaultConfig returns a Config populated with all built-in default values.
func NewDefaultConfig() *Config {
	return &Config{
		CacheDir:        ".agent_cache",
		RecordingDir:    ".",
		RecordingPrefix: "recording",
		AgentCommand:    "python agent/main.py",
		ModelName:       "gemini-2.5-flash",
		NotifyWebhook:   "http://127.0.0.1:18789/webhook",
		NotifyChannel:   "telegram",
	}
}

// GlobalConfigPath returns the path of the per-user config file, or "" when
// no home directory can be determined.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "phasectl", "config")
}
