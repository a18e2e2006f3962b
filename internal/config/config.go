// Package config loads testforge configuration from a YAML file, merging it
// over built-in defaults. CLI flags take precedence over config values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ProducerConfig configures the generative producer invocation.
type ProducerConfig struct {
	// Binary is the producer CLI binary (default "claude")
	Binary string `yaml:"binary"`

	// Timeout bounds one generation request
	Timeout time.Duration `yaml:"-"`
}

// EnrichmentConfig configures the optional analysis of expected-result text.
type EnrichmentConfig struct {
	// Enabled turns enrichment on; it is fail-soft either way
	Enabled bool `yaml:"enabled"`

	// Model is the GenAI model used for analysis
	Model string `yaml:"model"`

	// APIKeyEnv names the environment variable holding the API key
	APIKeyEnv string `yaml:"api_key_env"`
}

// HistoryConfig configures run-history recording.
type HistoryConfig struct {
	// Enabled turns history recording on
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path"`
}

// Config represents testforge configuration options
type Config struct {
	// OutputDir is the destination project directory for generated files
	OutputDir string `yaml:"output_dir"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Producer configures the generative producer
	Producer ProducerConfig `yaml:"producer"`

	// Enrichment configures expected-result analysis
	Enrichment EnrichmentConfig `yaml:"enrichment"`

	// History configures run-history recording
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "generated",
		LogLevel:  "info",
		Producer: ProducerConfig{
			Binary:  "claude",
			Timeout: 15 * time.Minute,
		},
		Enrichment: EnrichmentConfig{
			Enabled:   false,
			Model:     "gemini-2.0-flash",
			APIKeyEnv: "GEMINI_API_KEY",
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(".testforge", "history.db"),
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Temporary struct so the producer timeout can be given as "15m".
	type yamlConfig struct {
		OutputDir string `yaml:"output_dir"`
		LogLevel  string `yaml:"log_level"`
		Producer  struct {
			Binary  string `yaml:"binary"`
			Timeout string `yaml:"timeout"`
		} `yaml:"producer"`
		Enrichment *EnrichmentConfig `yaml:"enrichment"`
		History    *HistoryConfig    `yaml:"history"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.OutputDir != "" {
		cfg.OutputDir = yamlCfg.OutputDir
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.Producer.Binary != "" {
		cfg.Producer.Binary = yamlCfg.Producer.Binary
	}
	if yamlCfg.Producer.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Producer.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid producer timeout %q: %w", yamlCfg.Producer.Timeout, err)
		}
		cfg.Producer.Timeout = timeout
	}
	if yamlCfg.Enrichment != nil {
		if yamlCfg.Enrichment.Model == "" {
			yamlCfg.Enrichment.Model = cfg.Enrichment.Model
		}
		if yamlCfg.Enrichment.APIKeyEnv == "" {
			yamlCfg.Enrichment.APIKeyEnv = cfg.Enrichment.APIKeyEnv
		}
		cfg.Enrichment = *yamlCfg.Enrichment
	}
	if yamlCfg.History != nil {
		if yamlCfg.History.DBPath == "" {
			yamlCfg.History.DBPath = cfg.History.DBPath
		}
		cfg.History = *yamlCfg.History
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .testforge/config.yaml in the
// specified directory. If the directory or file doesn't exist, returns
// default configuration without error.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".testforge", "config.yaml"))
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if c.Producer.Timeout < 0 {
		return fmt.Errorf("producer timeout must be >= 0, got %v", c.Producer.Timeout)
	}
	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}
