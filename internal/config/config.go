// Package config loads the optional YAML analysis configuration. Everything
// has a working default; a config file only overrides pieces of it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mwgeurts/viewray-decisionlogs/internal/gating"
	"github.com/mwgeurts/viewray-decisionlogs/internal/histogram"
)

// Config mirrors the analysis config file.
type Config struct {
	// SamplingHz is the gating subsystem's decision reporting frequency,
	// used to scale the shutter transition rate.
	SamplingHz float64 `yaml:"sampling_hz"`

	// LogMarker is the substring identifying delivery log file names.
	LogMarker string `yaml:"log_marker"`

	// Workers sets how many log files are scanned concurrently.
	Workers int `yaml:"workers"`

	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`
	// Format is one of: console | json.
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SamplingHz: histogram.DefaultSamplingHz,
		LogMarker:  gating.DefaultMarker,
		Workers:    1,
		Logging:    LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads a YAML config file and fills absent fields with defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SamplingHz <= 0 {
		return fmt.Errorf("sampling_hz must be positive (got %v)", c.SamplingHz)
	}
	if c.LogMarker == "" {
		return fmt.Errorf("log_marker must not be empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}
	return nil
}
