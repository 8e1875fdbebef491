// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package middleware provides the infrastructure HTTP middleware shared by every
route: request ids, Prometheus instrumentation and access logging.

Key Components:

  - RequestID: assigns or propagates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency histogram and in-flight gauge,
    labelled by chi route pattern
  - AccessLog: one zerolog line per request, level chosen by status

All three are chi-compatible func(http.Handler) http.Handler values:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog)

RequestID must run first so that the other two see the ids in the context.
*/
package middleware
