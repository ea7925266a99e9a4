// Package config materializes the tracker's settings from an optional
// stocktrack.yaml file and the environment, environment winning.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration surface.
type Config struct {
	// DBPath locates the SQLite file backing the key-value store.
	DBPath string `yaml:"db_path"`
	// LowStockThreshold is the advisory warning level for stock outs.
	LowStockThreshold float64 `yaml:"low_stock_threshold"`
	// ExportDir receives spreadsheet exports.
	ExportDir string `yaml:"export_dir"`
	// LogLevel selects zap's level: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// Load reads the optional YAML file at yamlPath (skipped when empty or
// absent), then overlays environment variables, loading a .env file first
// when one exists.
func Load(yamlPath string) (*Config, error) {
	// Missing .env files are fine; configuration may come from the
	// environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:            "stocktrack.db",
		LowStockThreshold: 5,
		ExportDir:         ".",
		LogLevel:          "info",
	}

	if yamlPath != "" {
		raw, err := os.ReadFile(yamlPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", yamlPath, err)
			}
		} else if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", yamlPath, err)
		}
	}

	if v := os.Getenv("STOCKTRACK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STOCKTRACK_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("STOCKTRACK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("STOCKTRACK_LOW_STOCK"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("STOCKTRACK_LOW_STOCK: %w", err)
		}
		cfg.LowStockThreshold = threshold
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures required fields are populated and sane.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DBPath == "" {
		return errors.New("db_path must be provided")
	}
	if c.LowStockThreshold <= 0 {
		return errors.New("low_stock_threshold must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
