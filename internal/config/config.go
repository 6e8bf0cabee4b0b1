// Package config loads runtime configuration from environment variables, with
// an optional YAML rates file for the ROI constants. Precedence for every
// knob is: explicit override (a field set by the caller or a test) >
// environment value > compiled default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/mgrandau/ai-session-tracker-mcp/internal/metrics"
	"github.com/mgrandau/ai-session-tracker-mcp/internal/tracker"
)

// Config holds process-level configuration.
type Config struct {
	// DatabaseURL selects the persistent store; empty means in-memory.
	DatabaseURL string `envconfig:"SESSION_TRACKER_DATABASE_URL"`
	// LogDir is where the file logger writes; defaults under the home dir.
	LogDir string `envconfig:"SESSION_TRACKER_LOG_DIR"`
	// MaxSessionHours overrides the auto-close duration cap.
	MaxSessionHours float64 `envconfig:"SESSION_TRACKER_MAX_SESSION_HOURS"`
	// RatesFile points at a YAML file overriding the ROI rate constants.
	RatesFile string `envconfig:"SESSION_TRACKER_RATES_FILE"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.LogDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.LogDir = filepath.Join(home, ".session-tracker")
		} else {
			cfg.LogDir = "."
		}
	}
	return &cfg, nil
}

// Tracker resolves the controller configuration, applying the environment's
// max-session override and the rates file on top of the compiled defaults.
func (c *Config) Tracker() (tracker.Config, error) {
	tc := tracker.DefaultConfig()
	if c.MaxSessionHours > 0 {
		tc.MaxSessionHours = c.MaxSessionHours
	}
	if c.RatesFile != "" {
		rates, err := loadRates(c.RatesFile, tc.Metrics)
		if err != nil {
			return tc, err
		}
		tc.Metrics = rates
	}
	return tc, nil
}

// loadRates unmarshals the YAML rates file on top of the given defaults, so a
// partial file only overrides the keys it names.
func loadRates(path string, defaults metrics.Config) (metrics.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("reading rates file: %w", err)
	}
	rates := defaults
	if err := yaml.Unmarshal(data, &rates); err != nil {
		return defaults, fmt.Errorf("parsing rates file %s: %w", path, err)
	}
	return rates, nil
}
