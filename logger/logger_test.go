package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNewWithoutFileIsNop(t *testing.T) {
	log, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "game.log")

	log, err := New(Config{Level: "warn", File: path})
	require.NoError(t, err)
	log.Info("dropped")
	log.Warn("leaderboard append failed", zap.Int("score", 7))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "leaderboard append failed", entry["msg"])
	assert.Equal(t, float64(7), entry["score"])
	assert.Contains(t, entry, "ts")
}
