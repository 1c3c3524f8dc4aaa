package log

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelVerbose, ParseLevel("verbose"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))

	// The default level is warn.
	assert.Equal(t, slog.LevelWarn, ParseLevel(""))
	assert.Equal(t, slog.LevelWarn, ParseLevel("nonsense"))
}

func TestSetupLoggerConsoleOnly(t *testing.T) {
	logger, closers, err := SetupLogger("debug", "")
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Empty(t, closers)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, logger.Enabled(context.Background(), LevelVerbose))
}

func TestSetupLoggerWithFile(t *testing.T) {
	path := t.TempDir() + "/out.log"
	logger, closers, err := SetupLogger("info", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)
	logger.Info("hello")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}
	assert.FileExists(t, path)
}
