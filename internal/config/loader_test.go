package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]string
	}{
		{
			name: "basic key value pairs",
			content: `CACHE_DIR=/tmp/cache
MODEL_NAME=gemini-2.5-pro
`,
			want: map[string]string{"CACHE_DIR": "/tmp/cache", "MODEL_NAME": "gemini-2.5-pro"},
		},
		{
			name: "comments and blank lines skipped",
			content: `# phasectl config

CACHE_DIR=/tmp/cache
# RECORDING_PREFIX=ignored
`,
			want: map[string]string{"CACHE_DIR": "/tmp/cache"},
		},
		{
			name:    "whitespace trimmed",
			content: "  RECORDING_PREFIX =  rec  \n",
			want:    map[string]string{"RECORDING_PREFIX": "rec"},
		},
		{
			name: "non-whitelisted keys ignored",
			content: `CACHE_DIR=/tmp/cache
SECRET_TOKEN=abc
`,
			want: map[string]string{"CACHE_DIR": "/tmp/cache"},
		},
		{
			name:    "lines without equals skipped",
			content: "not a config line\nCACHE_DIR=/x\n",
			want:    map[string]string{"CACHE_DIR": "/x"},
		},
		{
			name:    "value may contain equals",
			content: "AGENT_COMMAND=python main.py --flag=1\n",
			want:    map[string]string{"AGENT_COMMAND": "python main.py --flag=1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config", tt.content)
			got, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadWithPrecedence(t *testing.T) {
	dir := t.TempDir()
	global := writeConfig(t, dir, "global", "CACHE_DIR=/global\nRECORDING_PREFIX=global_rec\nMODEL_NAME=global-model\n")
	project := writeConfig(t, dir, "project", "CACHE_DIR=/project\nRECORDING_PREFIX=project_rec\n")
	explicit := writeConfig(t, dir, "explicit", "CACHE_DIR=/explicit\n")

	t.Setenv("RECORDING_DIR", "/env/recordings")

	cfg, err := LoadWithPrecedence(global, project, explicit, map[string]string{"AGENT_COMMAND": "python cli.py"})
	require.NoError(t, err)

	assert.Equal(t, "/explicit", cfg.CacheDir, "explicit file beats project and global")
	assert.Equal(t, "project_rec", cfg.RecordingPrefix, "project file beats global")
	assert.Equal(t, "global-model", cfg.ModelName, "global file beats defaults")
	assert.Equal(t, "/env/recordings", cfg.RecordingDir, "environment beats files")
	assert.Equal(t, "python cli.py", cfg.AgentCommand, "CLI override beats everything")

	// Untouched fields keep their defaults.
	assert.Equal(t, "telegram", cfg.NotifyChannel)
}

func TestLoadWithPrecedenceMissingOptionalFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadWithPrecedence(
		filepath.Join(dir, "no-global"),
		filepath.Join(dir, "no-project"),
		"",
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig().CacheDir, cfg.CacheDir)
}

func TestLoadWithPrecedenceExplicitMustExist(t *testing.T) {
	_, err := LoadWithPrecedence("", "", filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestApplyMapToConfigBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"banana", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := NewDefaultConfig()
			ApplyMapToConfig(cfg, map[string]string{"VERBOSE": tt.value})
			assert.Equal(t, tt.want, cfg.Verbose)
		})
	}
}

func TestEnvOverridesWhitelistOnly(t *testing.T) {
	t.Setenv("CACHE_DIR", "/from/env")
	t.Setenv("PHASECTL_UNRELATED", "x")

	got := EnvOverrides()
	assert.Equal(t, "/from/env", got["CACHE_DIR"])
	assert.NotContains(t, got, "PHASECTL_UNRELATED")
}
