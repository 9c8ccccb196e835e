package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iburimskiy/brainwave-visualizer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, false)
	assert.Error(t, err)
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	log, err := New(config.LoggingConfig{Level: "warn"}, true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New(config.LoggingConfig{Level: "warn"}, false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestNewWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brainwave.log")
	log, err := New(config.LoggingConfig{Level: "info", Format: "json", File: path}, false)
	require.NoError(t, err)

	log.Info("frame exported")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"frame exported"`)
	assert.Contains(t, string(data), `"session":`)
}
