package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerWritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logFile := filepath.Join(t.TempDir(), "main.log")
	logger, closeFile, err := SetupLogger("info", logFile)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.With(slog.String("component", "test")).Info("visible", slog.Int("n", 1))
	closeFile()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=visible")
	assert.Contains(t, string(data), "component=test")
	assert.Contains(t, string(data), "source=logger_test.go")
	assert.NotContains(t, string(data), "hidden")
}

func TestSetupLoggerUnknownLevelFallsBackToDebug(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger, closeFile, err := SetupLogger("chatty", "")
	require.NoError(t, err)
	defer closeFile()

	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
}
