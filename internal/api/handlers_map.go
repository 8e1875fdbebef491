// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/parkwatch/internal/models"
	"github.com/tomtom215/parkwatch/internal/validation"
)

// NearbyResponse is the body of GET /api/map-data/nearby.
type NearbyResponse struct {
	Lat      float64             `json:"lat"`
	Lon      float64             `json:"lon"`
	RadiusKm float64             `json:"radius_km"`
	Count    int                 `json:"count"`
	Sites    []models.NearbySite `json:"sites"`
}

func (h *Handler) loadMapData(ctx context.Context) (*models.MapData, error) {
	data, err := h.mapData.GetOrLoad(mapCacheKey, func() (interface{}, error) {
		return h.db.GetMapData(ctx)
	})
	if err != nil {
		return nil, err
	}
	return data.(*models.MapData), nil
}

// MapData returns every site with its status colour and recent usage.
func (h *Handler) MapData(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	data, err := h.loadMapData(r.Context())
	if err != nil {
		writeServiceError(rw, err)
		return
	}
	rw.Success(data)
}

// NearbySites returns sites within radius_km of lat/lon, nearest first. The
// spatial index is rebuilt from the map data after every invalidation.
func (h *Handler) NearbySites(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q, field, ok := parseNearbyQuery(r)
	if !ok {
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation,
			"lat and lon are required numbers", map[string]interface{}{"field": field})
		return
	}
	if verr := validation.ValidateStruct(q); verr != nil {
		rw.ValidationError(verr)
		return
	}

	if !h.sites.Built() {
		data, err := h.loadMapData(r.Context())
		if err != nil {
			writeServiceError(rw, err)
			return
		}
		h.sites.Rebuild(data.Sites)
	}

	sites := h.sites.Nearby(q.Lat, q.Lon, q.RadiusKm)
	rw.Success(NearbyResponse{
		Lat:      q.Lat,
		Lon:      q.Lon,
		RadiusKm: q.RadiusKm,
		Count:    len(sites),
		Sites:    sites,
	})
}
