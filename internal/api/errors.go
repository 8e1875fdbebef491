// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/parkwatch/internal/auth"
	"github.com/tomtom215/parkwatch/internal/database"
	"github.com/tomtom215/parkwatch/internal/editor"
	"github.com/tomtom215/parkwatch/internal/logging"
	"github.com/tomtom215/parkwatch/internal/models"
	"github.com/tomtom215/parkwatch/internal/zonestore"
)

// errorMapping ties a sentinel error to its HTTP status and envelope code.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorMappings is checked in order with errors.Is. The first match wins.
var errorMappings = []errorMapping{
	{database.ErrClientNotFound, http.StatusNotFound, ErrCodeNotFound, "Client not found"},
	{zonestore.ErrLayoutNotFound, http.StatusNotFound, ErrCodeNotFound, "Layout not found"},
	{editor.ErrSessionNotFound, http.StatusNotFound, ErrCodeNotFound, "Editor session not found"},
	{models.ErrInvalidZoneDocument, http.StatusConflict, ErrCodeConflict, "Saved layout cannot be loaded"},
	{zonestore.ErrVersionConflict, http.StatusConflict, ErrCodeConflict, "Layout was saved with a newer version"},
	{database.ErrInvalidDate, http.StatusBadRequest, ErrCodeValidation, "Invalid reading date"},
	{zonestore.ErrInvalidLayout, http.StatusBadRequest, ErrCodeValidation, "Invalid layout"},
	{editor.ErrUnknownCommand, http.StatusBadRequest, ErrCodeValidation, "Unknown editor command"},
	{editor.ErrInvalidCommand, http.StatusBadRequest, ErrCodeValidation, "Invalid editor command"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid username or password"},
	{editor.ErrTooManySessions, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Too many open editor sessions"},
	{zonestore.ErrQueueFull, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Layout save queue is full"},
	{zonestore.ErrPersisterStopped, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Layout storage is shutting down"},
	{context.DeadlineExceeded, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Request timed out"},
}

// classifyError returns the status, code and client-safe message for err.
// Unmapped errors are reported as database failures.
func classifyError(err error) (int, string, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code, m.message
		}
	}
	return http.StatusInternalServerError, ErrCodeDatabaseError, "A database error occurred"
}

// writeServiceError renders err from a lower layer. Client-side failures keep
// the wrapped message as details; server-side failures are logged.
func writeServiceError(rw *ResponseWriter, err error) {
	status, code, message := classifyError(err)
	if status >= http.StatusInternalServerError {
		logging.Ctx(rw.r.Context()).Error().Err(err).Str("code", code).Msg("Request failed")
		if status == http.StatusInternalServerError {
			rw.Error(status, code, message)
			return
		}
	}
	rw.ErrorWithDetails(status, code, message, map[string]interface{}{"error": err.Error()})
}
