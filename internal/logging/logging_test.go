package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetup_Levels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		quiet     bool
		wantInfo  bool
		wantDebug bool
	}{
		{"default shows info", 0, false, true, false},
		{"verbose shows debug", 1, false, true, true},
		{"quiet hides info", 0, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Setup(&buf, tt.verbosity, tt.quiet)
			buf.Reset()

			logger.Info().Msg("info-line")
			logger.Debug().Msg("debug-line")
			logger.Warn().Msg("warn-line")

			out := buf.String()
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "info-line"))
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug-line"))
			assert.Contains(t, out, "warn-line")
		})
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(Setup(&buf, 0, false), "tailwind")
	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "component=tailwind")
}
