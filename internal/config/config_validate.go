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

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateLayouts,
		c.validateSecurity,
		c.validateEditor,
		c.validateCache,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.Latitude < -90 || c.Server.Latitude > 90 {
		return fmt.Errorf("SITE_LATITUDE must be between -90 and 90")
	}
	if c.Server.Longitude < -180 || c.Server.Longitude > 180 {
		return fmt.Errorf("SITE_LONGITUDE must be between -180 and 180")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

func (c *Config) validateLayouts() error {
	if c.Layouts.Path == "" && !c.Layouts.InMemory {
		return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
	}
	if c.Layouts.QueueSize < 1 {
		return fmt.Errorf("LAYOUT_QUEUE_SIZE must be at least 1")
	}
	if c.Layouts.SaveTimeout <= 0 || c.Layouts.BreakerTimeout <= 0 {
		return fmt.Errorf("LAYOUT_SAVE_TIMEOUT and LAYOUT_BREAKER_TIMEOUT must be positive")
	}
	if c.Layouts.BreakerFailures == 0 {
		return fmt.Errorf("LAYOUT_BREAKER_FAILURES must be at least 1")
	}
	return nil
}

const (
	minJWTSecretLength   = 32
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// placeholderPatterns catch secrets copied verbatim from example files.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"EXAMPLE",
}

func containsPlaceholder(s string) bool {
	upper := strings.ToUpper(s)
	for _, p := range placeholderPatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

func (c *Config) validateSecurity() error {
	s := c.Security
	if s.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(s.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if containsPlaceholder(s.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate one with: openssl rand -base64 32")
	}
	if s.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}
	if !s.RateLimitDisabled {
		if s.RateLimitReqs < minRateLimitRequests || s.RateLimitReqs > maxRateLimitRequests {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
		}
		if s.RateLimitWindow < minRateLimitWindow || s.RateLimitWindow > maxRateLimitWindow {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
		}
		if s.LoginRateLimit < 1 {
			return fmt.Errorf("LOGIN_RATE_LIMIT must be at least 1")
		}
	}
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS=* is not allowed in production; list the dashboard origins explicitly")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateEditor() error {
	e := c.Editor
	if e.SessionTTL <= 0 || e.ReapInterval <= 0 {
		return fmt.Errorf("EDITOR_SESSION_TTL and EDITOR_REAP_INTERVAL must be positive")
	}
	if e.MaxSessions < 1 {
		return fmt.Errorf("EDITOR_MAX_SESSIONS must be at least 1")
	}
	if e.PointerMoveRate <= 0 || e.PointerMoveBurst < 1 {
		return fmt.Errorf("EDITOR_POINTER_RATE must be positive and EDITOR_POINTER_BURST at least 1")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Cache.GridCellKm <= 0 {
		return fmt.Errorf("CACHE_GRID_CELL_KM must be positive")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
