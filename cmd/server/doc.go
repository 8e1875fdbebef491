// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package main is the entry point for the Parkwatch server.

Parkwatch monitors utility consumption (water, PAC, polymer, chlorine) across
the client sites of an industrial park. It serves the dashboard and map data,
accepts daily readings, and hosts server-side zone editor sessions in which
operators draw status zones over a site plan.

# Application Architecture

Services run under a Suture v4 supervisor tree:

	RootSupervisor ("parkwatch")
	├── DataSupervisor ("data-layer")
	│   ├── Layout persister (BadgerDB writes behind a circuit breaker)
	│   └── Cache pruners (dashboard, map-data)
	├── RealtimeSupervisor ("realtime-layer")
	│   ├── WebSocket hub
	│   └── Editor session reaper
	└── APISupervisor ("api-layer")
	    └── HTTP server

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Database: DuckDB for users, clients and readings, optionally seeded
 4. Layout store: BadgerDB
 5. Authentication: JWT tokens and Casbin role policy
 6. Supervisor tree and HTTP server

# Configuration

	HTTP_PORT=8080
	ENVIRONMENT=production       # enables Secure cookies and strict checks
	JWT_SECRET=<32+ chars>
	DUCKDB_PATH=/data/parkwatch.duckdb
	BADGER_PATH=/data/layouts
	SEED_DATA=true               # demo users, clients and 30 days of readings
	CORS_ORIGINS=https://ops.example.com
	LOG_LEVEL=info
	LOG_FORMAT=json

CONFIG_PATH points at an optional YAML file using the same keys.

# Signal Handling

SIGINT and SIGTERM cancel the tree. The HTTP server drains for up to 10s,
websocket clients receive a close frame, queued layout saves are flushed,
and the stores are closed.
*/
package main
