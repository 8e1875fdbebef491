// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/parkwatch/internal/auth"
	"github.com/tomtom215/parkwatch/internal/config"
	"github.com/tomtom215/parkwatch/internal/editor"
	"github.com/tomtom215/parkwatch/internal/logging"
	"github.com/tomtom215/parkwatch/internal/models"
	ws "github.com/tomtom215/parkwatch/internal/websocket"
	"github.com/tomtom215/parkwatch/internal/zonestore"
)

// SaveResponse is returned when a layout save has been queued.
type SaveResponse struct {
	SessionID string `json:"session_id"`
	SiteID    int64  `json:"site_id"`
	Version   int64  `json:"version"`
	Status    string `json:"status"`
}

// CreateSession opens an editor session for a site, preloaded with its saved
// layout when one exists.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req CreateSessionRequest
	if !decodeAndValidate(rw, r, &req) {
		return
	}

	saved, err := h.layouts.Get(r.Context(), req.SiteID)
	if err != nil && !errors.Is(err, zonestore.ErrLayoutNotFound) {
		writeServiceError(rw, err)
		return
	}

	session, err := h.sessions.Create(req.SiteID, req.Space(), req.Container(), username(r))
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	if saved != nil {
		if err := session.Load(saved); err != nil {
			_ = h.sessions.Close(session.ID())
			logging.Ctx(r.Context()).Warn().Err(err).Int64("site_id", req.SiteID).
				Msg("Saved layout could not be loaded")
			writeServiceError(rw, err)
			return
		}
	}
	// An explicit image replaces the canvas of the saved layout.
	if req.HasImage() && saved != nil {
		if _, err := session.Apply(editor.Command{
			Type:   editor.CmdSetImage,
			Width:  req.ImageWidth,
			Height: req.ImageHeight,
		}); err != nil {
			writeServiceError(rw, err)
			return
		}
	}

	rw.Created(session.State())
}

// editorSession resolves the {id} parameter to a session the caller may use.
// Sessions belong to the user who opened them; admins may use any session.
func (h *Handler) editorSession(rw *ResponseWriter, r *http.Request) (*editor.Session, bool) {
	session, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(rw, err)
		return nil, false
	}
	claims, ok := auth.ClaimsFromContext(r.Context())
	if ok && claims.Role != models.RoleAdmin && claims.Username != session.User() {
		rw.Error(http.StatusForbidden, ErrCodeForbidden, "Editor session belongs to another user")
		return nil, false
	}
	return session, true
}

// GetSession returns the current render state of a session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	session, ok := h.editorSession(rw, r)
	if !ok {
		return
	}
	rw.Success(session.State())
}

// ApplyCommand runs one editor command and returns the resulting state.
// Rejected commands answer 400 with the unchanged state in the details.
func (h *Handler) ApplyCommand(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	session, ok := h.editorSession(rw, r)
	if !ok {
		return
	}

	var cmd editor.Command
	if !decodeAndValidate(rw, r, &cmd) {
		return
	}

	state, err := session.Apply(cmd)
	if err != nil {
		_, code, message := classifyError(err)
		rw.ErrorWithDetails(http.StatusBadRequest, code, message, map[string]interface{}{
			"error": err.Error(),
			"state": state,
		})
		return
	}
	rw.Success(state)
}

// SaveSession queues the session's zones for storage and answers 202 with
// the pending version. The outcome arrives as a layout_saved or
// layout_save_failed event.
func (h *Handler) SaveSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	session, ok := h.editorSession(rw, r)
	if !ok {
		return
	}

	version, err := session.Save(r.Context(), h.saver)
	if err != nil {
		writeServiceError(rw, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("session_id", session.ID()).
		Int64("site_id", session.SiteID()).
		Int64("version", version).
		Msg("Layout save queued")
	rw.Accepted(SaveResponse{
		SessionID: session.ID(),
		SiteID:    session.SiteID(),
		Version:   version,
		Status:    "queued",
	})
}

// CloseSession discards a session without saving.
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	session, ok := h.editorSession(rw, r)
	if !ok {
		return
	}
	if err := h.sessions.Close(session.ID()); err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(map[string]string{"session_id": session.ID(), "status": "closed"})
}

// EditorSocket upgrades to a websocket that streams commands into the
// session and answers each with editor_state or editor_error.
func (h *Handler) EditorSocket(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	session, ok := h.editorSession(rw, r)
	if !ok {
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Editor WebSocket upgrade error")
		return
	}

	var cfg *config.EditorConfig
	if h.config != nil {
		cfg = &h.config.Editor
	}
	ws.NewEditorClient(conn, session, cfg).Start()
}
