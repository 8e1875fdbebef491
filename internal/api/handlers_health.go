// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package api

import (
	"context"
	"net/http"
	"time"
)

// healthPingTimeout bounds the database check.
const healthPingTimeout = 2 * time.Second

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status            string  `json:"status"` // healthy or degraded
	DatabaseConnected bool    `json:"database_connected"`
	EditorSessions    int     `json:"editor_sessions"`
	WebSocketClients  int     `json:"websocket_clients"`
	Uptime            float64 `json:"uptime_seconds"`
}

// Health reports liveness and database connectivity. The process answers
// 200 while degraded so orchestrators do not restart it for a database
// outage.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	health := HealthStatus{
		Status:            "healthy",
		DatabaseConnected: h.db != nil && h.db.Ping(ctx) == nil,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if !health.DatabaseConnected {
		health.Status = "degraded"
	}
	if h.sessions != nil {
		health.EditorSessions = h.sessions.Len()
	}
	if h.hub != nil {
		health.WebSocketClients = h.hub.GetClientCount()
	}

	NewResponseWriter(w, r).Success(health)
}
