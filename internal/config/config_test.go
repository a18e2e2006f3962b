package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "generated", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "claude", cfg.Producer.Binary)
	assert.Equal(t, 15*time.Minute, cfg.Producer.Timeout)
	assert.False(t, cfg.Enrichment.Enabled)
	assert.Equal(t, "gemini-2.0-flash", cfg.Enrichment.Model)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Enrichment.APIKeyEnv)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(".testforge", "history.db"), cfg.History.DBPath)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
output_dir: out/e2e
log_level: debug
producer:
  binary: /usr/local/bin/claude
  timeout: 5m
enrichment:
  enabled: true
history:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "out/e2e", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/usr/local/bin/claude", cfg.Producer.Binary)
	assert.Equal(t, 5*time.Minute, cfg.Producer.Timeout)

	assert.True(t, cfg.Enrichment.Enabled)
	assert.Equal(t, "gemini-2.0-flash", cfg.Enrichment.Model,
		"unset enrichment fields keep their defaults")

	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(".testforge", "history.db"), cfg.History.DBPath)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "log_level: warn\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "generated", cfg.OutputDir)
	assert.Equal(t, "claude", cfg.Producer.Binary)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "output_dir: [unterminated\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_BadTimeout(t *testing.T) {
	path := writeConfig(t, "producer:\n  timeout: soon\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid producer timeout")
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".testforge"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".testforge", "config.yaml"),
		[]byte("log_level: error\n"), 0644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)

	cfg, err = LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "invalid log_level"},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, "output_dir"},
		{"negative timeout", func(c *Config) { c.Producer.Timeout = -time.Second }, "timeout"},
		{"history without path", func(c *Config) { c.History.DBPath = "" }, "db_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
