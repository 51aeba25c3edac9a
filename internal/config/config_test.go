package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("unexpected listen address: %q", cfg.Listen)
	}
	if cfg.Store != "pebble" {
		t.Errorf("unexpected store backend: %q", cfg.Store)
	}
	if !cfg.Sources.Township.IsEnabled() {
		t.Error("expected sources enabled by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	contents := `
listen: ":9090"
store: memory
sources:
  pavilion:
    enabled: false
  township:
    base_url: "http://localhost:8081"
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Listen != ":9090" {
		t.Errorf("unexpected listen address: %q", cfg.Listen)
	}
	if cfg.Store != "memory" {
		t.Errorf("unexpected store backend: %q", cfg.Store)
	}
	if cfg.Sources.Pavilion.IsEnabled() {
		t.Error("expected pavilion disabled")
	}
	if !cfg.Sources.WoodlandsOnline.IsEnabled() {
		t.Error("expected unmentioned source to stay enabled")
	}
	if cfg.Sources.Township.BaseURL != "http://localhost:8081" {
		t.Errorf("unexpected township base URL: %q", cfg.Sources.Township.BaseURL)
	}
	// Unset values keep their defaults.
	if cfg.Interval != Default().Interval {
		t.Errorf("expected default interval, got %s", cfg.Interval)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults are valid", func(c *Config) {}, true},
		{"unknown store rejected", func(c *Config) { c.Store = "redis" }, false},
		{"pebble without data dir rejected", func(c *Config) { c.DataDir = "" }, false},
		{"memory without data dir accepted", func(c *Config) { c.Store = "memory"; c.DataDir = "" }, true},
		{"zero interval rejected", func(c *Config) { c.Interval = 0 }, false},
		{"bad log level rejected", func(c *Config) { c.LogLevel = "TRACE" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid config, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("store: redis\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for an unknown store backend")
	}
}
