// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and are
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)

Editor Metrics:
  - editor_sessions_active: Open editor sessions (gauge)
  - editor_sessions_reaped_total: Idle sessions closed (counter)
  - editor_commands_total: Commands applied (counter)
    Labels: type, result

Layout Metrics:
  - layout_saves_total: Saves by result (counter)
  - layout_save_duration_seconds: Badger write time (histogram)
  - layout_save_queue_depth: Pending saves (gauge)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Requests by result (counter)
  - circuit_breaker_state_transitions_total: State changes (counter)

Cache, WebSocket and authorization metrics follow the same naming scheme.

# Usage

	metrics.RecordAPIRequest("GET", "/api/dashboard", 200, elapsed)
	metrics.RecordLayoutSave("success", elapsed)

# Thread Safety

All collectors are safe for concurrent use.
*/
package metrics
