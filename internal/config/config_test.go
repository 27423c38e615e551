package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8750", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 64, cfg.Watch.MaxMonitors)
	assert.Equal(t, "0.0.0.0:8750", cfg.Addr())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.RateLimit.Enabled)
	// Unset values fall back to defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadYAMLOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "navigator.yaml")
	yaml := "server:\n  port: \"7777\"\nlogging:\n  level: warn\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Sections absent from the file keep their defaults.
	assert.Equal(t, 200, cfg.RateLimit.Burst)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()
	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.Server.Port)
}
