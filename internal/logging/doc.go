// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package logging provides the zerolog-backed global logger used across Parkwatch.

Key Components:

  - Init / Config: configures level, format (json or console), caller and
    timestamp output for the process-wide logger
  - Info, Warn, Error, Debug, Err: leveled event constructors on the global logger
  - Ctx: a logger carrying the request and correlation ids stored in a context
  - WithComponent: child loggers tagged with a "component" field
  - SlogHandler: a log/slog bridge so sutureslog writes through zerolog

Usage:

	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
	logging.Info().Str("addr", addr).Msg("HTTP server listening")
	logging.Ctx(r.Context()).Warn().Err(err).Msg("Layout save rejected")

Always terminate event chains with Msg or Send; an unterminated chain is
never written.
*/
package logging
