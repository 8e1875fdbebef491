// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/parkwatch/internal/auth"
	"github.com/tomtom215/parkwatch/internal/authz"
	"github.com/tomtom215/parkwatch/internal/middleware"
)

// NewRouter builds the HTTP routes.
//
// Global middleware runs in this order: request id, real IP, access log,
// Prometheus metrics, panic recovery, CORS. Every /api route is rate limited
// per IP; login has its own stricter budget.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	authn := auth.NewMiddleware(h.jwt)
	authn.SetErrorWriter(writeStatusError)
	rbac := authz.NewMiddleware(h.enforcer)
	rbac.SetErrorWriter(writeStatusError)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(mw.RateLimit())
		r.Use(compressJSON())

		r.Get("/health", h.Health)
		r.With(mw.RateLimitLogin()).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)

			r.With(rbac.Require(authz.ObjEvents, authz.ActRead)).Get("/ws", h.WebSocket)
			r.With(rbac.Require(authz.ObjDashboard, authz.ActRead)).Get("/dashboard", h.Dashboard)
			r.With(rbac.Require(authz.ObjReadings, authz.ActWrite)).Post("/submit-data", h.SubmitData)

			r.Route("/map-data", func(r chi.Router) {
				r.Use(rbac.Require(authz.ObjMap, authz.ActRead))
				r.Get("/", h.MapData)
				r.Get("/nearby", h.NearbySites)
			})

			r.Route("/clients", func(r chi.Router) {
				r.Use(rbac.Require(authz.ObjClients, authz.ActRead))
				r.Get("/", h.ListClients)
				r.Get("/{id}", h.GetClient)
			})

			r.Route("/layouts", func(r chi.Router) {
				r.With(rbac.Require(authz.ObjLayouts, authz.ActRead)).Get("/", h.ListLayouts)
				r.With(rbac.Require(authz.ObjLayouts, authz.ActRead)).Get("/{siteID}", h.GetLayout)
				r.With(rbac.Require(authz.ObjLayouts, authz.ActDelete)).Delete("/{siteID}", h.DeleteLayout)
			})

			r.Route("/editor/sessions", func(r chi.Router) {
				r.Use(rbac.Require(authz.ObjLayouts, authz.ActWrite))
				r.Post("/", h.CreateSession)
				r.Get("/{id}", h.GetSession)
				r.Post("/{id}/commands", h.ApplyCommand)
				r.Post("/{id}/save", h.SaveSession)
				r.Delete("/{id}", h.CloseSession)
				r.Get("/{id}/ws", h.EditorSocket)
			})
		})
	})

	return r
}

// compressJSON gzips responses except websocket upgrades, which must reach
// the handler with a hijackable writer.
func compressJSON() func(http.Handler) http.Handler {
	compress := chimiddleware.Compress(5, "application/json")
	return func(next http.Handler) http.Handler {
		compressed := compress(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if websocket.IsWebSocketUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}
			compressed.ServeHTTP(w, r)
		})
	}
}
