// Package config loads engine settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/rcliao/progress-engine/internal/achievement"
)

// Config holds settings read from PROGRESS_* variables. Command-line flags
// override them.
type Config struct {
	DBPath   string `env:"PROGRESS_DB"`
	User     string `env:"PROGRESS_USER"      envDefault:"default"`
	Lang     string `env:"PROGRESS_LANG"      envDefault:"de"`
	TZ       string `env:"PROGRESS_TZ"        envDefault:"UTC"`
	LogLevel string `env:"PROGRESS_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	return cfg, nil
}

// DefaultDBPath is ~/.progress-engine/progress.db.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".progress-engine", "progress.db")
}

// Location resolves TZ. An empty value means UTC.
func (c Config) Location() (*time.Location, error) {
	if c.TZ == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TZ)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", c.TZ, err)
	}
	return loc, nil
}

// Language resolves Lang against the catalog's supported languages.
func (c Config) Language() language.Tag {
	return achievement.ParseLanguage(c.Lang)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
