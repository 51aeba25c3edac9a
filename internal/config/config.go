// Package config defines the YAML configuration for the ingestion service
// and a loader that can hot-reload it when the file changes.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SourceConfig controls one source adapter.
type SourceConfig struct {
	// Enabled defaults to true when unset.
	Enabled *bool  `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
}

// IsEnabled reports whether the source should run.
func (s SourceConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// SourcesConfig holds the per-source settings.
type SourcesConfig struct {
	Township        SourceConfig `yaml:"township"`
	WoodlandsOnline SourceConfig `yaml:"woodlandsonline"`
	Pavilion        SourceConfig `yaml:"pavilion"`
}

// Config is the full service configuration.
type Config struct {
	// Listen is the HTTP address for serve mode.
	Listen string `yaml:"listen"`

	// Store selects the persistence backend: "memory" or "pebble".
	Store string `yaml:"store"`

	// DataDir holds the pebble database when the pebble backend is selected.
	DataDir string `yaml:"data_dir"`

	// Interval is the scheduled ingestion cadence in serve mode.
	Interval time.Duration `yaml:"interval"`

	// MinInterval skips a run when the last successful run is fresher than
	// this. Forced runs bypass the guard.
	MinInterval time.Duration `yaml:"min_interval"`

	// FetchTimeout bounds each adapter's fetch.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// PartitionTTL bounds how long date partitions live in the store.
	PartitionTTL time.Duration `yaml:"partition_ttl"`

	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string `yaml:"log_level"`

	Sources SourcesConfig `yaml:"sources"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		Listen:       ":8080",
		Store:        "pebble",
		DataDir:      "~/.local/share/woodlands-events",
		Interval:     time.Hour,
		MinInterval:  10 * time.Minute,
		FetchTimeout: 10 * time.Second,
		PartitionTTL: 30 * 24 * time.Hour,
		LogLevel:     "INFO",
	}
}

// Load reads and validates a config file. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that would break at runtime.
func (c Config) Validate() error {
	if c.Store != "memory" && c.Store != "pebble" {
		return fmt.Errorf("invalid store backend: %q (must be 'memory' or 'pebble')", c.Store)
	}
	if c.Store == "pebble" && c.DataDir == "" {
		return fmt.Errorf("data_dir is required for the pebble store")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	switch c.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}
	return nil
}
