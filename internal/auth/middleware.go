// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/parkwatch/internal/logging"
)

type contextKey string

// ClaimsContextKey is the request context key holding *Claims.
const ClaimsContextKey contextKey = "claims"

var errMissingToken = errors.New("missing token")

// ErrorWriter writes an authentication failure response.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, message string)

// Middleware validates bearer tokens.
type Middleware struct {
	jwtManager *JWTManager
	writeError ErrorWriter
}

// NewMiddleware creates the authentication middleware. Failures are written
// with http.Error until SetErrorWriter is called.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{
		jwtManager: jwtManager,
		writeError: func(w http.ResponseWriter, _ *http.Request, status int, message string) {
			http.Error(w, message, status)
		},
	}
}

// SetErrorWriter replaces how failures are rendered.
func (m *Middleware) SetErrorWriter(fn ErrorWriter) {
	if fn != nil {
		m.writeError = fn
	}
}

// Authenticate rejects requests without a valid token and stores the claims
// in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			m.writeError(w, r, http.StatusUnauthorized, "Unauthorized: "+err.Error())
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			m.writeError(w, r, http.StatusUnauthorized, "Unauthorized: invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

func extractToken(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", errors.New("invalid authorization header")
		}
		return parts[1], nil
	}
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}
	return "", errMissingToken
}

// ContextWithClaims returns a copy of ctx carrying claims.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok && claims != nil
}
