// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package authz

import (
	"net/http"

	"github.com/tomtom215/parkwatch/internal/auth"
	"github.com/tomtom215/parkwatch/internal/logging"
	"github.com/tomtom215/parkwatch/internal/metrics"
)

// Middleware enforces the policy on HTTP routes.
type Middleware struct {
	enforcer   *Enforcer
	writeError auth.ErrorWriter
}

// NewMiddleware creates the authorization middleware.
func NewMiddleware(enforcer *Enforcer) *Middleware {
	return &Middleware{
		enforcer: enforcer,
		writeError: func(w http.ResponseWriter, _ *http.Request, status int, message string) {
			http.Error(w, message, status)
		},
	}
}

// SetErrorWriter replaces how failures are rendered.
func (m *Middleware) SetErrorWriter(fn auth.ErrorWriter) {
	if fn != nil {
		m.writeError = fn
	}
}

// Require allows the request through only if the authenticated role may
// perform action on object. It must run after auth.Middleware.Authenticate.
func (m *Middleware) Require(object, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFromContext(r.Context())
			if !ok {
				metrics.AuthzDecisions.WithLabelValues("deny").Inc()
				m.writeError(w, r, http.StatusForbidden, "Forbidden: no authentication context")
				return
			}

			allowed, err := m.enforcer.Enforce(claims.Role, object, action)
			if err != nil {
				metrics.AuthzDecisions.WithLabelValues("error").Inc()
				logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
				m.writeError(w, r, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !allowed {
				metrics.AuthzDecisions.WithLabelValues("deny").Inc()
				logging.Ctx(r.Context()).Warn().
					Str("username", claims.Username).
					Str("role", claims.Role).
					Str("object", object).
					Str("action", action).
					Msg("Authorization denied")
				m.writeError(w, r, http.StatusForbidden, "Forbidden: insufficient permissions")
				return
			}

			metrics.AuthzDecisions.WithLabelValues("allow").Inc()
			next.ServeHTTP(w, r)
		})
	}
}
