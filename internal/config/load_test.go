package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "aria", cfg.Wake.Word)
	assert.Equal(t, 15*time.Minute, cfg.Monitor.ReminderInterval)
	assert.Equal(t, time.Minute, cfg.Monitor.FocusInterval)
	assert.Contains(t, cfg.Monitor.FocusKeywords, "deep work")
	assert.Equal(t, 25, cfg.Monitor.BatteryThreshold)
	assert.Equal(t, 3, cfg.Wake.SelectionMaxTries)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aria-config.yaml")
	data := []byte("wake:\n  word: jarvis\nmonitor:\n  event_limit: 5\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "jarvis", cfg.Wake.Word)
	assert.Equal(t, 5, cfg.Monitor.EventLimit)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched fields keep defaults.
	assert.Equal(t, 15*time.Minute, cfg.Monitor.ReminderInterval)
}

func TestLoadFromMissingFileErrors(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aria-config.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Wake.Word, cfg.Wake.Word)

	assert.Error(t, WriteDefault(path))
}
