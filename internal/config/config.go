// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

// Package config loads layered configuration with Koanf v2: struct defaults,
// then an optional YAML file, then SERVICEGRAPH_* environment variables.
//
// Only operational knobs live here. Scoring weights, degree weights and the
// traversal bound are fixed design constants in code: a trust score of 85
// must mean the same thing on every deployment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order. The
// first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/servicegraph/config.yaml",
	"/etc/servicegraph/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "SERVICEGRAPH_CONFIG"

// envPrefix namespaces the environment variables this package reads.
const envPrefix = "SERVICEGRAPH_"

// Config is the full application configuration.
type Config struct {
	Logging  LoggingConfig  `koanf:"logging"`
	Store    StoreConfig    `koanf:"store"`
	Matching MatchingConfig `koanf:"matching"`
}

// LoggingConfig configures the zerolog output.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes file:line in log events.
	Caller bool `koanf:"caller"`
}

// StoreConfig selects and configures the backing store.
type StoreConfig struct {
	// Backend is "memory" or "badger".
	Backend string `koanf:"backend"`

	// Path is the BadgerDB directory. Required for the badger backend.
	Path string `koanf:"path"`
}

// MatchingConfig bounds the work one match request may do.
type MatchingConfig struct {
	// Concurrency bounds parallel trust scoring within a batch.
	Concurrency int `koanf:"concurrency"`

	// Candidates caps the offerings considered per request; 0 = unlimited.
	Candidates int `koanf:"candidates"`
}

// defaultConfig returns the built-in defaults, applied before file and env
// layers.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Store: StoreConfig{
			Backend: "memory",
			Path:    "/data/servicegraph",
		},
		Matching: MatchingConfig{
			Concurrency: 8,
			Candidates:  0,
		},
	}
}

// Load loads configuration with layered sources: defaults, then an optional
// YAML file, then environment variables (highest priority).
// SERVICEGRAPH_LOGGING_LEVEL maps to logging.level, and so on.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(key string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, envPrefix)), "_", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the explicit or first default config path that
// exists, or empty when none does.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate checks cross-field constraints the type system can't express.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format: must be json or console, got %q", c.Logging.Format)
	}

	switch c.Store.Backend {
	case "memory":
	case "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path: required for the badger backend")
		}
	default:
		return fmt.Errorf("store.backend: must be memory or badger, got %q", c.Store.Backend)
	}

	if c.Matching.Concurrency < 1 {
		return fmt.Errorf("matching.concurrency: must be at least 1, got %d", c.Matching.Concurrency)
	}
	if c.Matching.Candidates < 0 {
		return fmt.Errorf("matching.candidates: must not be negative, got %d", c.Matching.Candidates)
	}
	return nil
}
