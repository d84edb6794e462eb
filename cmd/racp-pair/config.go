package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML configuration file schema. Values present in the
// file override the corresponding flags.
type fileConfig struct {
	CodeTTL     string `yaml:"code_ttl"`
	MaxAttempts int    `yaml:"max_attempts"`
	LogLevel    string `yaml:"log_level"`
}

// loadConfigFile merges a YAML configuration file into cfg.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.CodeTTL != "" {
		ttl, err := time.ParseDuration(fc.CodeTTL)
		if err != nil {
			return fmt.Errorf("invalid code_ttl: %w", err)
		}
		cfg.CodeTTL = ttl
	}
	if fc.MaxAttempts > 0 {
		cfg.MaxAttempts = fc.MaxAttempts
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}

	return nil
}
