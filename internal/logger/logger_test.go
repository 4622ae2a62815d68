package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	crm "github.com/smdydx/bidua-crm"
)

func TestInitRejectsUnknownLevel(t *testing.T) {
	_, err := Init(crm.LoggingConfig{Level: "loud", Format: "json"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestInitConsoleFormat(t *testing.T) {
	logger, err := Init(crm.LoggingConfig{Level: "debug", Format: "console"})

	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestInitInfoLevelSilencesDebug(t *testing.T) {
	logger, err := Init(crm.LoggingConfig{Level: "info", Format: "json"})

	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestInitWritesToConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	logger, err := Init(crm.LoggingConfig{
		Level:      "info",
		Format:     "json",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	})
	require.NoError(t, err)

	logger.Info("listening", zap.String("addr", ":8080"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "listening")
	assert.Contains(t, string(data), ":8080")
}

func TestInitReplacesGlobalLogger(t *testing.T) {
	logger, err := Init(crm.LoggingConfig{Level: "warn", Format: "json"})

	require.NoError(t, err)
	assert.Same(t, logger, zap.L())
}
