// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/parkwatch/internal/database"
	"github.com/tomtom215/parkwatch/internal/logging"
	"github.com/tomtom215/parkwatch/internal/metrics"
	"github.com/tomtom215/parkwatch/internal/models"
)

// Dashboard returns park-wide totals, chart series and alerts.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	data, err := h.dashboard.GetOrLoad(dashboardCacheKey, func() (interface{}, error) {
		return h.db.GetDashboardData(r.Context())
	})
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(data.(*models.DashboardData))
}

// SubmitData stores one day of readings for a site. Cached dashboard and map
// responses are dropped and a reading_submitted event is broadcast.
func (h *Handler) SubmitData(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SubmitDataRequest
	if !decodeAndValidate(rw, r, &req) {
		metrics.ReadingsSubmitted.WithLabelValues("invalid").Inc()
		return
	}

	reading := req.Reading()
	if err := h.db.InsertReading(r.Context(), reading); err != nil {
		metrics.ReadingsSubmitted.WithLabelValues("error").Inc()
		writeServiceError(rw, err)
		return
	}
	metrics.ReadingsSubmitted.WithLabelValues("success").Inc()

	h.invalidateReadings()
	if h.hub != nil {
		date, err := time.Parse(database.DateLayout, reading.Date)
		if err != nil {
			date = reading.CreatedAt
		}
		h.hub.BroadcastReadingSubmitted(reading.ClientID, reading.ID, date)
	}

	logging.Ctx(r.Context()).Info().
		Int64("client_id", reading.ClientID).
		Int64("reading_id", reading.ID).
		Str("date", reading.Date).
		Str("username", username(r)).
		Msg("Reading submitted")
	rw.Created(reading)
}
