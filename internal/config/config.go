// Package config loads ski settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-provided defaults for the CLI. Command-line
// flags override every field.
type Config struct {
	MaxDepth int    `env:"SKI_MAX_DEPTH" envDefault:"512"`
	LogLevel string `env:"SKI_LOG_LEVEL" envDefault:"info"`
	Format   string `env:"SKI_FORMAT"    envDefault:"text"`
	DB       string `env:"SKI_DB"`
}

// Default returns the configuration used when the environment is empty.
func Default() Config {
	return Config{
		MaxDepth: 512,
		LogLevel: "info",
		Format:   "text",
	}
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects values no command can run with.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("SKI_MAX_DEPTH must be non-negative, got %d", c.MaxDepth)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("SKI_FORMAT must be text or json, got %q", c.Format)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel maps debug, info, warn and error (any case) to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("SKI_LOG_LEVEL must be debug, info, warn or error, got %q", s)
	}
}
