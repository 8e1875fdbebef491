// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Layouts  LayoutsConfig  `koanf:"layouts"`
	Security SecurityConfig `koanf:"security"`
	Editor   EditorConfig   `koanf:"editor"`
	Cache    CacheConfig    `koanf:"cache"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production

	// Map centre for clients without coordinates.
	Latitude  float64 `koanf:"latitude"`
	Longitude float64 `koanf:"longitude"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
	Seed      bool   `koanf:"seed"`
}

// LayoutsConfig holds site layout storage and persister settings.
type LayoutsConfig struct {
	Path            string        `koanf:"path"`
	InMemory        bool          `koanf:"in_memory"`
	QueueSize       int           `koanf:"queue_size"`
	SaveTimeout     time.Duration `koanf:"save_timeout"`
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// SecurityConfig holds authentication and request limiting settings.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	LoginRateLimit    int           `koanf:"login_rate_limit"` // attempts per minute per IP
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// EditorConfig holds zone editor session settings.
type EditorConfig struct {
	SessionTTL   time.Duration `koanf:"session_ttl"`
	ReapInterval time.Duration `koanf:"reap_interval"`
	MaxSessions  int           `koanf:"max_sessions"`

	// Pointer-move commands per second accepted on one editor socket.
	PointerMoveRate  float64 `koanf:"pointer_move_rate"`
	PointerMoveBurst int     `koanf:"pointer_move_burst"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	TTL        time.Duration `koanf:"ttl"`
	GridCellKm float64       `koanf:"grid_cell_km"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DSN returns the DuckDB connection string with its settings applied.
func (d DatabaseConfig) DSN() string {
	var params []string
	if d.MaxMemory != "" {
		params = append(params, "max_memory="+d.MaxMemory)
	}
	if d.Threads > 0 {
		params = append(params, fmt.Sprintf("threads=%d", d.Threads))
	}
	if len(params) == 0 {
		return d.Path
	}
	return d.Path + "?" + strings.Join(params, "&")
}
