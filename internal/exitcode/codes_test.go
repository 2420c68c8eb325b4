package exitcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{Success, "Success"},
		{Error, "Error"},
		{Interrupted, "Interrupted"},
		{42, "unknown"},
		{-1, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.code))
		})
	}
}

func TestCodeValues(t *testing.T) {
	assert.Equal(t, 0, Success)
	assert.Equal(t, 1, Error)
	assert.Equal(t, 130, Interrupted)
}
