package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_WritesJSONWithAppAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := newWithStdout(Options{AppName: "ers", Version: "test", Env: "development", Level: "debug"}, &buf)
	defer closer.Close()

	logger.Debug("hello", "user_id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ers", line["app"])
	assert.Equal(t, "development", line["env"])
	assert.EqualValues(t, 7, line["user_id"])
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := newWithStdout(Options{Level: "warn"}, &buf)

	logger.Info("quiet")
	assert.Zero(t, buf.Len())
}

func TestNew_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ers.log")
	var buf bytes.Buffer
	logger, closer := newWithStdout(Options{AppName: "ers", File: path}, &buf)

	logger.Info("to both")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}
