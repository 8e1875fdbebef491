// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package api

import (
	"net/http"

	"github.com/tomtom215/parkwatch/internal/logging"
	ws "github.com/tomtom215/parkwatch/internal/websocket"
)

// LayoutDeletedData is the payload of a layout_deleted event.
type LayoutDeletedData struct {
	SiteID    int64  `json:"site_id"`
	DeletedBy string `json:"deleted_by"`
}

// ListLayouts returns every saved site layout.
func (h *Handler) ListLayouts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	layouts, err := h.layouts.List(r.Context())
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(layouts)
}

// GetLayout returns the saved layout of one site.
func (h *Handler) GetLayout(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	siteID, err := pathInt64(r, "siteID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	layout, err := h.layouts.Get(r.Context(), siteID)
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(layout)
}

// DeleteLayout removes a site's layout and broadcasts layout_deleted.
func (h *Handler) DeleteLayout(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	siteID, err := pathInt64(r, "siteID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	if err := h.layouts.Delete(r.Context(), siteID); err != nil {
		writeServiceError(rw, err)
		return
	}

	event := LayoutDeletedData{SiteID: siteID, DeletedBy: username(r)}
	if h.hub != nil {
		h.hub.BroadcastJSON(ws.MessageTypeLayoutDeleted, event)
	}
	logging.Ctx(r.Context()).Info().Int64("site_id", siteID).Str("username", event.DeletedBy).Msg("Layout deleted")
	rw.Success(event)
}
