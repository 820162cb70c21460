package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeEnv(t, "SUPPLY_MAX_DEPTH=8\nSUPPLY_MAX_LOOP_ITERATIONS=50\nSUPPLY_LOG_LEVEL=DEBUG\nSUPPLY_LOG_FORMAT=json\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.Equal(t, 50, cfg.MaxLoopIterations)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoad_EnvironmentWins(t *testing.T) {
	path := writeEnv(t, "SUPPLY_MAX_DEPTH=8\n")
	t.Setenv(KeyMaxDepth, "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxDepth)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Run("not a number", func(t *testing.T) {
		_, err := Load(writeEnv(t, "SUPPLY_MAX_DEPTH=deep\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), KeyMaxDepth)
	})

	t.Run("not positive", func(t *testing.T) {
		_, err := Load(writeEnv(t, "SUPPLY_MAX_LOOP_ITERATIONS=0\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	logger := cfg.NewLogger(&buf)
	logger.Info("dropped")
	logger.Warn("kept", "depth", 2)

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"msg":"kept"`)
	assert.Contains(t, out, `"depth":2`)
}
