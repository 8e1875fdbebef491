// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/parkwatch/config.yaml",
	"/etc/parkwatch/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
			Latitude:    13.7563, // Bangkok
			Longitude:   100.5018,
		},
		Database: DatabaseConfig{
			Path:      "/data/parkwatch.duckdb",
			MaxMemory: "1GB",
			Seed:      false,
		},
		Layouts: LayoutsConfig{
			Path:            "/data/layouts",
			QueueSize:       64,
			SaveTimeout:     10 * time.Second,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Security: SecurityConfig{
			SessionTimeout:  24 * time.Hour,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			LoginRateLimit:  10,
			CORSOrigins:     []string{"*"},
		},
		Editor: EditorConfig{
			SessionTTL:       30 * time.Minute,
			ReapInterval:     time.Minute,
			MaxSessions:      200,
			PointerMoveRate:  60,
			PointerMoveBurst: 10,
		},
		Cache: CacheConfig{
			TTL:        30 * time.Second,
			GridCellKm: 1.0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads defaults, then the optional config file, then
// environment variables, and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	// Server
	"http_host":      "server.host",
	"http_port":      "server.port",
	"http_timeout":   "server.timeout",
	"environment":    "server.environment",
	"site_latitude":  "server.latitude",
	"site_longitude": "server.longitude",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"seed_data":         "database.seed",

	// Layouts
	"badger_path":             "layouts.path",
	"badger_in_memory":        "layouts.in_memory",
	"layout_queue_size":       "layouts.queue_size",
	"layout_save_timeout":     "layouts.save_timeout",
	"layout_breaker_failures": "layouts.breaker_failures",
	"layout_breaker_timeout":  "layouts.breaker_timeout",

	// Security
	"jwt_secret":          "security.jwt_secret",
	"session_timeout":     "security.session_timeout",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"login_rate_limit":    "security.login_rate_limit",
	"cors_origins":        "security.cors_origins",

	// Editor
	"editor_session_ttl":   "editor.session_ttl",
	"editor_reap_interval": "editor.reap_interval",
	"editor_max_sessions":  "editor.max_sessions",
	"editor_pointer_rate":  "editor.pointer_move_rate",
	"editor_pointer_burst": "editor.pointer_move_burst",

	// Cache
	"cache_ttl":          "cache.ttl",
	"cache_grid_cell_km": "cache.grid_cell_km",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
