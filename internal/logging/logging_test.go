package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"INFO":   slog.LevelInfo,
		" warn ": slog.LevelWarn,
		"error":  slog.LevelError,
	} {
		l, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, l, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	t.Run("text filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New(&buf, "warn", "text")
		require.NoError(t, err)
		log.Info("hidden")
		log.Warn("shown", "city", "Lahore")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "city=Lahore")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New(&buf, "debug", "json")
		require.NoError(t, err)
		log.Debug("evaluation done", "eui", 123.4)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "evaluation done", rec["msg"])
		assert.Equal(t, 123.4, rec["eui"])
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := New(&bytes.Buffer{}, "info", "xml")
		assert.ErrorContains(t, err, "unsupported log format")
	})
}
