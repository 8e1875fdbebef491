// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = testSecret
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"latitude out of range", func(c *Config) { c.Server.Latitude = 91 }, true},
		{"empty duckdb path", func(c *Config) { c.Database.Path = "" }, true},
		{"empty badger path", func(c *Config) { c.Layouts.Path = "" }, true},
		{"in-memory badger", func(c *Config) { c.Layouts.Path = ""; c.Layouts.InMemory = true }, false},
		{"zero queue", func(c *Config) { c.Layouts.QueueSize = 0 }, true},
		{"short secret", func(c *Config) { c.Security.JWTSecret = "short" }, true},
		{"placeholder secret", func(c *Config) { c.Security.JWTSecret = "CHANGEME-CHANGEME-CHANGEME-CHANGEME" }, true},
		{"rate limit window too long", func(c *Config) { c.Security.RateLimitWindow = 2 * time.Hour }, true},
		{"rate limit disabled ignores bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, false},
		{"wildcard cors in production", func(c *Config) { c.Server.Environment = "production" }, true},
		{"explicit cors in production", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.CORSOrigins = []string{"https://park.example.org"}
		}, false},
		{"zero pointer rate", func(c *Config) { c.Editor.PointerMoveRate = 0 }, true},
		{"zero grid cell", func(c *Config) { c.Cache.GridCellKm = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cfg  DatabaseConfig
		want string
	}{
		{DatabaseConfig{Path: ":memory:"}, ":memory:"},
		{DatabaseConfig{Path: "/data/p.duckdb", MaxMemory: "1GB"}, "/data/p.duckdb?max_memory=1GB"},
		{DatabaseConfig{Path: "/data/p.duckdb", MaxMemory: "1GB", Threads: 4}, "/data/p.duckdb?max_memory=1GB&threads=4"},
	}
	for _, tt := range tests {
		if got := tt.cfg.DSN(); got != tt.want {
			t.Errorf("DSN() = %q, want %q", got, tt.want)
		}
	}
}

func TestServerAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
