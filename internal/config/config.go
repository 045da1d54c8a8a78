// Package config loads focusflow's YAML configuration and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/focusflow/internal/blocklist"
	"github.com/abhisek/focusflow/internal/logging"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level configuration.
type Config struct {
	Database     DatabaseConfig   `yaml:"database"`
	Logging      LoggingConfig    `yaml:"logging"`
	Classifier   ClassifierConfig `yaml:"classifier"`
	Focus        FocusConfig      `yaml:"focus"`
	BlockedSites []string         `yaml:"blocked_sites"`
}

// DatabaseConfig locates the SQLite database. An empty path means the
// default data directory.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// ClassifierConfig tunes the classification pipeline.
type ClassifierConfig struct {
	// Threshold is the confidence the weighted classifier must exceed
	// before the keyword fallback is skipped.
	Threshold float64 `yaml:"threshold"`
	// Patterns is an optional YAML file with extra pattern groups.
	Patterns string `yaml:"patterns"`
}

// FocusConfig controls focus-time tracking.
type FocusConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	SaveInterval time.Duration `yaml:"save_interval"`
	// Timezone for the auto-focus schedule; empty means local time.
	Timezone string `yaml:"timezone"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Classifier: ClassifierConfig{
			Threshold: 0.7,
		},
		Focus: FocusConfig{
			TickInterval: time.Second,
			SaveInterval: time.Minute,
		},
		BlockedSites: blocklist.DefaultSites(),
	}
}

// DefaultPath resolves the config file location:
// $XDG_CONFIG_HOME/focusflow/config.yaml, else ~/.config/focusflow/config.yaml.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "focusflow", "config.yaml"), nil
}

// Load reads the config file at path. A missing file, or an empty path,
// yields the defaults. Environment overrides are applied last and the
// result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if p := os.Getenv("FOCUSFLOW_DB"); p != "" {
		c.Database.Path = p
	}
	if lvl := os.Getenv("FOCUSFLOW_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if t := os.Getenv("FOCUSFLOW_THRESHOLD"); t != "" {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return fmt.Errorf("%w: FOCUSFLOW_THRESHOLD: %v", ErrInvalidConfig, err)
		}
		c.Classifier.Threshold = v
	}
	if p := os.Getenv("FOCUSFLOW_PATTERNS"); p != "" {
		c.Classifier.Patterns = p
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	if c.Classifier.Threshold < 0 || c.Classifier.Threshold > 1 {
		return fmt.Errorf("%w: classifier.threshold %v not in [0, 1]", ErrInvalidConfig, c.Classifier.Threshold)
	}
	if c.Focus.TickInterval <= 0 {
		return fmt.Errorf("%w: focus.tick_interval must be positive", ErrInvalidConfig)
	}
	if c.Focus.SaveInterval < c.Focus.TickInterval {
		return fmt.Errorf("%w: focus.save_interval shorter than tick_interval", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: focus.timezone: %v", ErrInvalidConfig, err)
	}
	for _, s := range c.BlockedSites {
		if _, err := blocklist.Normalize(s); err != nil {
			return fmt.Errorf("%w: blocked_sites: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Location returns the schedule time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Focus.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Focus.Timezone)
}
