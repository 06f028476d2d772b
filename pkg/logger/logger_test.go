package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Options{Level: slog.LevelWarn, Writer: &buf, NoColor: true})

	l.Info("hidden")
	l.Warn("dataset reloaded", "draws", 1100)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "dataset reloaded")
	assert.Contains(t, out, "draws=1100")
}
