// Package config provides configuration structures and loading logic for
// seclib-based applications and the latctl CLI.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Lattice LatticeConfig `yaml:"lattice"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LatticeConfig points at the lattice declaration file.
type LatticeConfig struct {
	File string `yaml:"file"`
}

// LoggingConfig holds configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig holds configuration for the optional metrics endpoint.
type MetricsConfig struct {
	Address string `yaml:"address"`
}

// Load reads configuration from a file and applies environment variable
// overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		// Defaults
		Lattice: LatticeConfig{
			File: "lattice.yaml",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	if path != "" {
		//nolint:gosec // Config file path is controlled by the operator
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("SECLIB_LATTICE_FILE"); val != "" {
		cfg.Lattice.File = val
	}
	if val := os.Getenv("SECLIB_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("SECLIB_METRICS_ADDR"); val != "" {
		cfg.Metrics.Address = val
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Lattice.File == "" {
		return fmt.Errorf("lattice.file must not be empty")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured logging level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
}
