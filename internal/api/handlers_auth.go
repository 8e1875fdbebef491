// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/parkwatch/internal/auth"
	"github.com/tomtom215/parkwatch/internal/logging"
)

// Login exchanges a username and password for a signed token. The token is
// returned in the body and also set as an HTTP-only cookie so browser
// websocket upgrades are authenticated.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.login == nil {
		rw.ServiceUnavailable("Authentication is not configured")
		return
	}

	var req LoginRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	result, err := h.login.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			rw.Unauthorized("Invalid username or password")
			return
		}
		rw.DatabaseError(err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   h.config != nil && h.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	})

	logging.Ctx(r.Context()).Info().
		Str("username", sanitizeLogValue(result.Username)).
		Str("role", result.Role).
		Msg("User logged in")
	rw.Success(result)
}
