// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/parkwatch/internal/auth"
	"github.com/tomtom215/parkwatch/internal/authz"
	"github.com/tomtom215/parkwatch/internal/cache"
	"github.com/tomtom215/parkwatch/internal/config"
	"github.com/tomtom215/parkwatch/internal/database"
	"github.com/tomtom215/parkwatch/internal/editor"
	"github.com/tomtom215/parkwatch/internal/logging"
	"github.com/tomtom215/parkwatch/internal/validation"
	ws "github.com/tomtom215/parkwatch/internal/websocket"
	"github.com/tomtom215/parkwatch/internal/zonestore"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Cache keys
const (
	dashboardCacheKey = "dashboard"
	mapCacheKey       = "map-data"
)

// Dependencies are the components the handlers serve.
type Dependencies struct {
	Config    *config.Config
	DB        *database.DB
	Layouts   *zonestore.Store
	Saver     editor.Saver
	Sessions  *editor.Manager
	Hub       *ws.Hub
	JWT       *auth.JWTManager
	Enforcer  *authz.Enforcer
	Dashboard *cache.Cache
	MapData   *cache.Cache
	Sites     *cache.SiteIndex
}

// Handler holds the HTTP handlers.
type Handler struct {
	config    *config.Config
	db        *database.DB
	layouts   *zonestore.Store
	saver     editor.Saver
	sessions  *editor.Manager
	hub       *ws.Hub
	jwt       *auth.JWTManager
	enforcer  *authz.Enforcer
	login     *auth.Authenticator
	dashboard *cache.Cache
	mapData   *cache.Cache
	sites     *cache.SiteIndex
	startTime time.Time
}

// NewHandler creates the handlers. Missing caches are created with the
// configured TTL.
func NewHandler(deps Dependencies) *Handler {
	ttl := 5 * time.Minute
	cellKm := 1.0
	if deps.Config != nil {
		if deps.Config.Cache.TTL > 0 {
			ttl = deps.Config.Cache.TTL
		}
		if deps.Config.Cache.GridCellKm > 0 {
			cellKm = deps.Config.Cache.GridCellKm
		}
	}
	if deps.Dashboard == nil {
		deps.Dashboard = cache.New("dashboard", ttl)
	}
	if deps.MapData == nil {
		deps.MapData = cache.New("map", ttl)
	}
	if deps.Sites == nil {
		deps.Sites = cache.NewSiteIndex(cellKm)
	}

	h := &Handler{
		config:    deps.Config,
		db:        deps.DB,
		layouts:   deps.Layouts,
		saver:     deps.Saver,
		sessions:  deps.Sessions,
		hub:       deps.Hub,
		jwt:       deps.JWT,
		enforcer:  deps.Enforcer,
		dashboard: deps.Dashboard,
		mapData:   deps.MapData,
		sites:     deps.Sites,
		startTime: time.Now(),
	}
	if deps.DB != nil && deps.JWT != nil {
		h.login = auth.NewAuthenticator(deps.DB, deps.JWT, database.IsUserNotFound)
	}
	return h
}

// invalidateReadings drops every response derived from readings.
func (h *Handler) invalidateReadings() {
	h.dashboard.Clear()
	h.mapData.Clear()
	h.sites.Invalidate()
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts configured CORS origins. Browsers always send
// Origin on websocket upgrades, so a missing header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}
	if h.config == nil {
		return true
	}
	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// decodeAndValidate reads a JSON body into dst and validates it. It writes
// the error response and returns false on failure.
func decodeAndValidate(rw *ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(rw.w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rw.BadRequest("Invalid JSON body")
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		rw.ValidationError(verr)
		return false
	}
	return true
}

// pathInt64 parses a positive integer URL parameter.
func pathInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, sanitizeLogValue(raw))
	}
	return id, nil
}

// sanitizeLogValue strips control characters and truncates v for logs.
func sanitizeLogValue(v string) string {
	const maxLen = 200
	v = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, v)
	if len(v) > maxLen {
		v = v[:maxLen] + "..."
	}
	return v
}

// username returns the authenticated username, or "" on open routes.
func username(r *http.Request) string {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		return claims.Username
	}
	return ""
}
