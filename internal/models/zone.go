// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package models

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/parkwatch/internal/geometry"
)

// ErrInvalidZoneDocument is returned when a stored zone cannot be turned back
// into editor geometry.
var ErrInvalidZoneDocument = errors.New("invalid zone document")

// ShapeType is the persisted shape vocabulary.
type ShapeType string

const (
	ShapeTypePolygon   ShapeType = "polygon"
	ShapeTypeCircle    ShapeType = "circle"
	ShapeTypeRectangle ShapeType = "rectangle"
)

// Coordinate is a persisted logical point.
type Coordinate struct {
	X float64 `json:"x" validate:"min=-1000000,max=1000000"`
	Y float64 `json:"y" validate:"min=-1000000,max=1000000"`
}

// ZoneDocument is the stored form of a zone.
//
// Every shape is a point list:
//   - rectangle: the four corners clockwise from top-left (nw, ne, se, sw)
//   - circle: the centre followed by the east boundary point
//   - polygon: the vertices in drawing order
type ZoneDocument struct {
	ZoneID      string       `json:"zoneId" validate:"required,max=128"`
	Name        string       `json:"name" validate:"max=200"`
	ShapeType   ShapeType    `json:"shapeType" validate:"required,oneof=polygon circle rectangle"`
	Coordinates []Coordinate `json:"coordinates" validate:"required,min=2,max=1000,dive"`
	Status      Status       `json:"status" validate:"required,oneof=good warning danger"`
	Color       string       `json:"color,omitempty" validate:"omitempty,hexcolor"`
	LabelAnchor *Coordinate  `json:"labelAnchor,omitempty"`
}

// SiteLayout is the saved zone collection of one site plan.
type SiteLayout struct {
	SiteID      int64          `json:"site_id" validate:"required,gt=0"`
	ImageWidth  float64        `json:"image_width" validate:"gt=0"`
	ImageHeight float64        `json:"image_height" validate:"gt=0"`
	Zones       []ZoneDocument `json:"zones" validate:"max=500,dive"`
	Version     int64          `json:"version"`
	SavedBy     string         `json:"saved_by"`
	SavedAt     time.Time      `json:"saved_at"`
}

// Space returns the logical canvas the layout was drawn on.
func (l SiteLayout) Space() geometry.Space {
	return geometry.Space{Width: l.ImageWidth, Height: l.ImageHeight}
}

// StatusByZone indexes zone statuses by zone id.
func (l SiteLayout) StatusByZone() map[string]Status {
	out := make(map[string]Status, len(l.Zones))
	for _, z := range l.Zones {
		out[z.ZoneID] = z.Status
	}
	return out
}

func coord(p geometry.Point) Coordinate {
	return Coordinate{X: p.X, Y: p.Y}
}

func (c Coordinate) point() geometry.Point {
	return geometry.Pt(c.X, c.Y)
}

// ZoneToDocument encodes an editor zone for storage.
func ZoneToDocument(z geometry.Zone, status Status) ZoneDocument {
	doc := ZoneDocument{
		ZoneID: z.ID,
		Name:   z.Label,
		Status: status.Persistable(),
		Color:  z.Color,
	}
	switch z.Shape {
	case geometry.ShapeRect:
		doc.ShapeType = ShapeTypeRectangle
		doc.Coordinates = []Coordinate{
			{X: z.X, Y: z.Y},
			{X: z.X + z.Width, Y: z.Y},
			{X: z.X + z.Width, Y: z.Y + z.Height},
			{X: z.X, Y: z.Y + z.Height},
		}
	case geometry.ShapeCircle:
		doc.ShapeType = ShapeTypeCircle
		doc.Coordinates = []Coordinate{{X: z.CX, Y: z.CY}, {X: z.CX + z.R, Y: z.CY}}
	case geometry.ShapePolygon:
		doc.ShapeType = ShapeTypePolygon
		doc.Coordinates = make([]Coordinate, len(z.Points))
		for i, p := range z.Points {
			doc.Coordinates[i] = coord(p)
		}
		if z.LabelAnchor != nil {
			anchor := coord(*z.LabelAnchor)
			doc.LabelAnchor = &anchor
		}
	}
	return doc
}

// ZoneFromDocument decodes a stored zone. Rectangles are rebuilt from the
// bounding box of their corners, circles from centre and boundary point.
func ZoneFromDocument(doc ZoneDocument) (geometry.Zone, error) {
	z := geometry.Zone{ID: doc.ZoneID, Label: doc.Name, Color: doc.Color}
	n := len(doc.Coordinates)

	switch doc.ShapeType {
	case ShapeTypeRectangle:
		if n != 4 {
			return z, fmt.Errorf("%w: rectangle %q has %d corners", ErrInvalidZoneDocument, doc.ZoneID, n)
		}
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, c := range doc.Coordinates {
			minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
			minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
		}
		z.Shape = geometry.ShapeRect
		z.X, z.Y, z.Width, z.Height = minX, minY, maxX-minX, maxY-minY

	case ShapeTypeCircle:
		if n != 2 {
			return z, fmt.Errorf("%w: circle %q has %d points", ErrInvalidZoneDocument, doc.ZoneID, n)
		}
		center := doc.Coordinates[0].point()
		z.Shape = geometry.ShapeCircle
		z.CX, z.CY = center.X, center.Y
		z.R = center.DistanceTo(doc.Coordinates[1].point())

	case ShapeTypePolygon:
		if n < geometry.MinPolygonVertices {
			return z, fmt.Errorf("%w: polygon %q has %d vertices", ErrInvalidZoneDocument, doc.ZoneID, n)
		}
		z.Shape = geometry.ShapePolygon
		z.Points = make([]geometry.Point, n)
		for i, c := range doc.Coordinates {
			z.Points[i] = c.point()
		}
		if doc.LabelAnchor != nil {
			anchor := doc.LabelAnchor.point()
			z.LabelAnchor = &anchor
		}

	default:
		return z, fmt.Errorf("%w: unknown shape type %q", ErrInvalidZoneDocument, doc.ShapeType)
	}
	return z, nil
}

// ZonesToDocuments encodes a zone collection. Statuses are looked up by zone
// id; zones without one are stored as good.
func ZonesToDocuments(zones []geometry.Zone, statuses map[string]Status) []ZoneDocument {
	docs := make([]ZoneDocument, 0, len(zones))
	for _, z := range zones {
		docs = append(docs, ZoneToDocument(z, statuses[z.ID]))
	}
	return docs
}

// ZonesFromDocuments decodes a stored collection, stopping at the first
// malformed document.
func ZonesFromDocuments(docs []ZoneDocument) ([]geometry.Zone, error) {
	zones := make([]geometry.Zone, 0, len(docs))
	for _, d := range docs {
		z, err := ZoneFromDocument(d)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, nil
}
