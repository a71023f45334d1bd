package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		l := Build(tt.level, "json", &bytes.Buffer{})
		assert.Equal(t, tt.want, l.GetLevel(), "level %q", tt.level)
	}
}

func TestBuild_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Build("info", "json", &buf)

	l.Info().Str("member", "alice").Msg("member added")
	l.Debug().Msg("dropped")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "member added", line["message"])
	assert.Equal(t, "alice", line["member"])
	assert.Contains(t, line, "time")
	assert.Contains(t, line, "caller")
}
