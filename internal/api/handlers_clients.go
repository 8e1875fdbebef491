// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package api

import (
	"net/http"
)

// ListClients returns every client ordered by plot.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	clients, err := h.db.ListClients(r.Context())
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(clients)
}

// GetClient returns one client with its usage summary, charts and readings.
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id, err := pathInt64(r, "id")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	detail, err := h.db.GetClientDetail(r.Context(), id)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(detail)
}
