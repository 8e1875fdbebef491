// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package config loads and validates Parkwatch configuration.

Configuration is layered with koanf v2, later layers overriding earlier ones:

 1. Defaults: defaultConfig(), loaded through the structs provider
 2. Config file: CONFIG_PATH, or the first of config.yaml, config.yml,
    /etc/parkwatch/config.yaml found on disk
 3. Environment variables, mapped explicitly (unmapped variables are ignored)

# Sections

  - server: HTTP bind address, timeouts, environment, map centre
  - database: DuckDB path, memory limit, seeding
  - layouts: BadgerDB path for site layouts, persister queue and breaker
  - security: JWT secret and lifetime, rate limits, CORS origins
  - editor: session idle TTL, reaper interval, pointer-move throttling
  - cache: response cache TTL, spatial grid cell size
  - logging: level, format, caller

# Environment Variables

	HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, ENVIRONMENT
	SITE_LATITUDE, SITE_LONGITUDE
	DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS, SEED_DATA
	BADGER_PATH, LAYOUT_QUEUE_SIZE, LAYOUT_SAVE_TIMEOUT,
	LAYOUT_BREAKER_FAILURES, LAYOUT_BREAKER_TIMEOUT
	JWT_SECRET, SESSION_TIMEOUT, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW,
	DISABLE_RATE_LIMIT, LOGIN_RATE_LIMIT, CORS_ORIGINS (comma separated)
	EDITOR_SESSION_TTL, EDITOR_REAP_INTERVAL, EDITOR_MAX_SESSIONS,
	EDITOR_POINTER_RATE, EDITOR_POINTER_BURST
	CACHE_TTL, CACHE_GRID_CELL_KM
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
