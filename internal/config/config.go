// Package config handles prdflight configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"prdflight/internal/prd"
)

// ConfigFileName is the optional per-project configuration file.
const ConfigFileName = ".prdflight.yaml"

// Config holds prdflight configuration.
type Config struct {
	// Report history database
	DatabasePath string

	// Number of reports shown by the history command
	HistoryLimit int

	// Verbose mode for debugging
	Verbose bool

	// Evaluator tuning; see prd.Thresholds
	Thresholds prd.Thresholds
}

// Load builds configuration from defaults, the optional .prdflight.yaml in
// the working directory, and environment overrides, in that order.
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath: defaultDatabasePath(),
		HistoryLimit: 20,
		Thresholds:   prd.DefaultThresholds(),
	}

	if path := findConfigFile(); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	if v := os.Getenv("PRDFLIGHT_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("PRDFLIGHT_HISTORY_LIMIT"); v != "" {
		cfg.HistoryLimit = parseIntOrDefault(v, cfg.HistoryLimit)
	}
	if v := os.Getenv("PRDFLIGHT_VERBOSE"); v != "" {
		cfg.Verbose = v == "true" || v == "1"
	}

	return cfg, nil
}

// applyFile layers a yaml config file over the current values. Absent keys
// keep their existing values.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	layered := struct {
		Database     string         `yaml:"database"`
		HistoryLimit int            `yaml:"history_limit"`
		Thresholds   prd.Thresholds `yaml:"thresholds"`
	}{
		Database:     c.DatabasePath,
		HistoryLimit: c.HistoryLimit,
		Thresholds:   c.Thresholds,
	}

	if err := yaml.Unmarshal(data, &layered); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	c.DatabasePath = layered.Database
	c.HistoryLimit = layered.HistoryLimit
	c.Thresholds = layered.Thresholds
	return nil
}

// findConfigFile returns the config file in the working directory, or "".
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// defaultDatabasePath returns SQLite in the project directory.
func defaultDatabasePath() string {
	dir, err := os.Getwd()
	if err != nil {
		return filepath.Join(".prdflight", "reports.db")
	}
	return filepath.Join(dir, ".prdflight", "reports.db")
}

func parseIntOrDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
