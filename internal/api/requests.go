// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/parkwatch/internal/geometry"
	"github.com/tomtom215/parkwatch/internal/models"
)

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// SubmitDataRequest is one day of meter readings for a site, as sent by the
// data-entry form.
type SubmitDataRequest struct {
	SiteID     int64   `json:"siteId" validate:"required,gt=0"`
	Date       string  `json:"date" validate:"required,isodate"`
	WaterMeter float64 `json:"waterMeter" validate:"min=0"`
	Pac        float64 `json:"pac" validate:"min=0"`
	Polymer    float64 `json:"polymer" validate:"min=0"`
	Chlorine   float64 `json:"chlorine" validate:"min=0"`
	Notes      string  `json:"notes" validate:"max=1000"`
}

// Reading converts the request to a reading.
func (r SubmitDataRequest) Reading() *models.UtilityReading {
	return &models.UtilityReading{
		ClientID:      r.SiteID,
		Date:          r.Date,
		WaterUsage:    r.WaterMeter,
		PacUsage:      r.Pac,
		PolymerUsage:  r.Polymer,
		ChlorineUsage: r.Chlorine,
		Notes:         r.Notes,
	}
}

// CreateSessionRequest opens an editor session. The image size becomes the
// logical canvas; the container size is the on-screen drawing area. Without
// an image size the saved layout's canvas is used, then the default canvas.
type CreateSessionRequest struct {
	SiteID          int64   `json:"site_id" validate:"required,gt=0"`
	ImageWidth      float64 `json:"image_width" validate:"min=0,max=100000"`
	ImageHeight     float64 `json:"image_height" validate:"min=0,max=100000"`
	ContainerWidth  float64 `json:"container_width" validate:"min=0,max=20000"`
	ContainerHeight float64 `json:"container_height" validate:"min=0,max=20000"`
}

// HasImage reports whether both image dimensions were given.
func (r CreateSessionRequest) HasImage() bool {
	return r.ImageWidth > 0 && r.ImageHeight > 0
}

// Space returns the requested canvas, or the default canvas.
func (r CreateSessionRequest) Space() geometry.Space {
	return geometry.SpaceForImage(r.ImageWidth, r.ImageHeight)
}

// Container returns the requested drawing area.
func (r CreateSessionRequest) Container() geometry.Size {
	return geometry.Size{Width: r.ContainerWidth, Height: r.ContainerHeight}
}

// NearbyQuery holds the query parameters of GET /api/map-data/nearby.
type NearbyQuery struct {
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lon      float64 `json:"lon" validate:"min=-180,max=180"`
	RadiusKm float64 `json:"radius_km" validate:"gt=0,max=500"`
}

// defaultNearbyRadiusKm applies when radius_km is omitted.
const defaultNearbyRadiusKm = 5.0

// parseNearbyQuery reads lat, lon and radius_km. Unparseable numbers are
// reported by name.
func parseNearbyQuery(r *http.Request) (NearbyQuery, string, bool) {
	q := r.URL.Query()
	out := NearbyQuery{RadiusKm: defaultNearbyRadiusKm}
	fields := []struct {
		name     string
		dst      *float64
		required bool
	}{
		{"lat", &out.Lat, true},
		{"lon", &out.Lon, true},
		{"radius_km", &out.RadiusKm, false},
	}
	for _, f := range fields {
		raw := q.Get(f.name)
		if raw == "" {
			if f.required {
				return out, f.name, false
			}
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return out, f.name, false
		}
		*f.dst = v
	}
	return out, "", true
}
