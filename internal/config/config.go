// Package config loads the server configuration from an optional
// .doraconfig YAML file using Viper. Missing files fall back to defaults
// so the binary works out of the box.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime settings for the DORA metrics server.
type Config struct {
	// ServerName is the implementation name announced to MCP clients.
	ServerName string

	// DefaultPeriodDays is the measurement period applied when a
	// deployment-frequency call omits the days argument.
	DefaultPeriodDays int

	// EventsEnabled controls the tool-invocation audit log.
	EventsEnabled bool

	// EventsPath is the JSONL audit log location, relative to the base
	// path unless absolute.
	EventsPath string
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		ServerName:        "dora-metrics",
		DefaultPeriodDays: 30,
		EventsEnabled:     true,
		EventsPath:        ".dora_events.jsonl",
	}
}

// Load reads the .doraconfig file from basePath. If the file does not
// exist, defaults are returned.
func Load(basePath string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName(".doraconfig")
	v.SetConfigType("yaml")
	v.AddConfigPath(basePath)

	v.SetDefault("server.name", cfg.ServerName)
	v.SetDefault("metrics.default_period_days", cfg.DefaultPeriodDays)
	v.SetDefault("events.enabled", cfg.EventsEnabled)
	v.SetDefault("events.path", cfg.EventsPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .doraconfig: %w", err)
	}

	cfg.ServerName = v.GetString("server.name")
	cfg.DefaultPeriodDays = v.GetInt("metrics.default_period_days")
	cfg.EventsEnabled = v.GetBool("events.enabled")
	cfg.EventsPath = v.GetString("events.path")

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks a Config for invalid field values and returns an error
// naming every problem found.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.ServerName == "" {
		errs = append(errs, "server.name must not be empty")
	}

	if cfg.DefaultPeriodDays <= 0 {
		errs = append(errs, fmt.Sprintf(
			"metrics.default_period_days must be positive, got %d",
			cfg.DefaultPeriodDays,
		))
	}

	if cfg.EventsEnabled && cfg.EventsPath == "" {
		errs = append(errs, "events.path must not be empty when events are enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
