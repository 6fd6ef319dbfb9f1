// Package config loads runtime settings from an optional YAML file, an
// optional .env file, and environment variables, in that order of
// increasing precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names. Each overrides the matching file setting.
const (
	EnvDatabasePath = "ACADEMY_DB"
	EnvAdminSecret  = "ACADEMY_ADMIN_SECRET"
	EnvScanWindow   = "ACADEMY_SCAN_WINDOW"
	EnvScanInterval = "ACADEMY_SCAN_INTERVAL"
)

// Config holds everything the command tree needs at startup.
type Config struct {
	// DatabasePath is the SQLite database file.
	DatabasePath string

	// AdminSecret gates the privileged operations. Empty means privileged
	// operations are refused.
	AdminSecret string

	// ScanWindow is the duplicate-scan suppression window.
	ScanWindow time.Duration

	// ScanInterval is the scan source polling interval.
	ScanInterval time.Duration
}

// fileConfig is the YAML form: durations are strings like "3s".
type fileConfig struct {
	DatabasePath string `yaml:"database_path"`
	AdminSecret  string `yaml:"admin_secret"`
	ScanWindow   string `yaml:"scan_window"`
	ScanInterval string `yaml:"scan_interval"`
}

// Default returns the built-in settings used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		DatabasePath: "academy.db",
		ScanWindow:   3 * time.Second,
		ScanInterval: 33 * time.Millisecond,
	}
}

// Load builds the effective configuration. path names a YAML settings
// file; empty path means file-less defaults. A .env file in the working
// directory is applied to the process environment first, and environment
// variables override everything.
func Load(path string) (Config, error) {
	// Missing .env is the common case and not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		if fc.DatabasePath != "" {
			cfg.DatabasePath = fc.DatabasePath
		}
		if fc.AdminSecret != "" {
			cfg.AdminSecret = fc.AdminSecret
		}
		if fc.ScanWindow != "" {
			d, err := time.ParseDuration(fc.ScanWindow)
			if err != nil {
				return Config{}, fmt.Errorf("parse config %s: scan_window: %w", path, err)
			}
			cfg.ScanWindow = d
		}
		if fc.ScanInterval != "" {
			d, err := time.ParseDuration(fc.ScanInterval)
			if err != nil {
				return Config{}, fmt.Errorf("parse config %s: scan_interval: %w", path, err)
			}
			cfg.ScanInterval = d
		}
	}

	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(EnvAdminSecret); v != "" {
		cfg.AdminSecret = v
	}
	if v := os.Getenv(EnvScanWindow); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvScanWindow, err)
		}
		cfg.ScanWindow = d
	}
	if v := os.Getenv(EnvScanInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvScanInterval, err)
		}
		cfg.ScanInterval = d
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("config: database path must not be empty")
	}
	if c.ScanWindow < 0 {
		return fmt.Errorf("config: scan window must not be negative")
	}
	if c.ScanInterval <= 0 {
		return fmt.Errorf("config: scan interval must be positive")
	}
	return nil
}
