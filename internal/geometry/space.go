// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package geometry

import (
	"fmt"
	"math"
)

// Default logical canvas extent used until a background image is loaded.
const (
	DefaultWidth  = 1000.0
	DefaultHeight = 800.0
)

// Point is a 2D coordinate. Whether it is in screen pixels or logical units
// depends on where it came from.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies both components by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both dimensions are strictly positive and finite.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0 &&
		!math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}

// Extent is an axis-aligned rectangle given by its top-left origin and size.
type Extent struct {
	Origin Point `json:"origin"`
	Size   Size  `json:"size"`
}

// Center returns the midpoint of the extent.
func (e Extent) Center() Point {
	return Point{
		X: e.Origin.X + e.Size.Width/2,
		Y: e.Origin.Y + e.Size.Height/2,
	}
}

// Contains reports whether p lies inside the extent, edges included.
func (e Extent) Contains(p Point) bool {
	return p.X >= e.Origin.X && p.X <= e.Origin.X+e.Size.Width &&
		p.Y >= e.Origin.Y && p.Y <= e.Origin.Y+e.Size.Height
}

// ViewBox formats the extent as an SVG viewBox attribute value.
func (e Extent) ViewBox() string {
	return fmt.Sprintf("%g %g %g %g", e.Origin.X, e.Origin.Y, e.Size.Width, e.Size.Height)
}

// Space is the logical canvas shared by the Viewport and the Editor.
// Zone coordinates and background image pixels line up 1:1 inside it.
type Space struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultSpace is the canvas used when no background image has been loaded.
func DefaultSpace() Space {
	return Space{Width: DefaultWidth, Height: DefaultHeight}
}

// SpaceForImage returns the canvas for a background image of the given natural
// pixel size. Non-positive dimensions fall back to DefaultSpace.
func SpaceForImage(width, height int) Space {
	if width <= 0 || height <= 0 {
		return DefaultSpace()
	}
	return Space{Width: float64(width), Height: float64(height)}
}

// Valid reports whether the space has a usable extent.
func (s Space) Valid() bool {
	return Size{Width: s.Width, Height: s.Height}.Valid()
}

// Extent returns the full canvas anchored at the origin.
func (s Space) Extent() Extent {
	return Extent{Size: Size{Width: s.Width, Height: s.Height}}
}
