package logging

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything it printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "0s"},
		{name: "seconds only", seconds: 45, want: "45s"},
		{name: "minute boundary", seconds: 60, want: "1m 0s"},
		{name: "minutes and seconds", seconds: 90, want: "1m 30s"},
		{name: "hour boundary", seconds: 3600, want: "1h 0m 0s"},
		{name: "hours minutes seconds", seconds: 3661, want: "1h 1m 1s"},
		{name: "two hours", seconds: 7200, want: "2h 0m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.seconds))
		})
	}
}

func TestSetVerboseGatesDebug(t *testing.T) {
	// Debug output routing is a fmt.Println; the gate itself is the
	// observable contract.
	SetVerbose(false)
	assert.False(t, verbose)
	SetVerbose(true)
	assert.True(t, verbose)
	SetVerbose(false)
}

func TestDebugfGatesOnVerbose(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(false)
	out := captureStdout(t, func() { Debugf("tick %d", 1) })
	assert.Empty(t, out)

	SetVerbose(true)
	out = captureStdout(t, func() { Debugf("tick %d", 2) })
	assert.Contains(t, out, "[DEBUG]")
	assert.Contains(t, out, "tick 2")
}
