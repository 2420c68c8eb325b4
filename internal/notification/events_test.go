package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name  string
		event string
		want  string
	}{
		{name: "saved", event: EventSaved, want: `✅ checkpoint "phase2" saved`},
		{name: "retry done", event: EventRetryDone, want: `🔁 retry of "phase2" finished (agent exit 3)`},
		{name: "interrupted", event: EventInterrupted, want: `⏸️ retry of "phase2" interrupted (exit 3)`},
		{name: "unknown event", event: "mystery", want: `ℹ️ "phase2" event: mystery (exit 3)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEvent(tt.event, "phase2", 3))
		})
	}
}
