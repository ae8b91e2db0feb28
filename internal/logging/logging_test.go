package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"volunteerhub/internal/config"
	"volunteerhub/internal/logging"
)

func TestNew_InstallsGlobal(t *testing.T) {
	logger, cleanup, err := logging.New(config.LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	defer cleanup()

	assert.Same(t, logger, zap.L())
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_ConsoleDefault(t *testing.T) {
	logger, cleanup, err := logging.New(config.LogConfig{Level: "DEBUG"})
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_Invalid(t *testing.T) {
	_, _, err := logging.New(config.LogConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)

	_, _, err = logging.New(config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
