// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package geometry

import "math"

// Zoom tuning.
const (
	// ZoomIntensity is the exponent step applied per wheel notch.
	ZoomIntensity = 0.1

	// ButtonZoomIn and ButtonZoomOut are the discrete zoom control factors.
	ButtonZoomIn  = 0.8
	ButtonZoomOut = 1.25

	// MinZoomScale and MaxZoomScale bound the viewport width relative to the
	// width of the Space. 0.1 is a 10x magnification, 10 is a 10x reduction.
	MinZoomScale = 0.1
	MaxZoomScale = 10.0
)

// ZoomDirection selects whether a zoom shrinks (in) or grows (out) the viewport.
type ZoomDirection int

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

// String returns "in" or "out".
func (d ZoomDirection) String() string {
	if d == ZoomOut {
		return "out"
	}
	return "in"
}

// PointerButton follows the DOM MouseEvent.button numbering.
type PointerButton int

const (
	ButtonPrimary   PointerButton = 0
	ButtonAuxiliary PointerButton = 1
	ButtonSecondary PointerButton = 2
)

// PanState is the drag state of a Viewport.
type PanState int

const (
	PanIdle PanState = iota
	Panning
)

// String returns the state name.
func (s PanState) String() string {
	if s == Panning {
		return "panning"
	}
	return "idle"
}

// Viewport is the visible window over a Space, rendered as the SVG viewBox.
//
// The container is the on-screen element in pixels. Its ratio to the viewport
// size gives the per-axis scale used by every screen/logical conversion.
type Viewport struct {
	space     Space
	container Size
	view      Extent
	pan       PanState
	panLast   Point
}

// NewViewport returns a viewport showing the whole space inside a container of
// the given pixel size. An invalid space falls back to DefaultSpace and an
// invalid container to one pixel per logical unit.
func NewViewport(space Space, container Size) *Viewport {
	if !space.Valid() {
		space = DefaultSpace()
	}
	if !container.Valid() {
		container = Size{Width: space.Width, Height: space.Height}
	}
	return &Viewport{
		space:     space,
		container: container,
		view:      space.Extent(),
	}
}

// Extent returns the visible window in logical units.
func (v *Viewport) Extent() Extent {
	return v.view
}

// Space returns the logical canvas.
func (v *Viewport) Space() Space {
	return v.space
}

// Container returns the container size in pixels.
func (v *Viewport) Container() Size {
	return v.container
}

// PanState reports whether a drag pan is in progress.
func (v *Viewport) PanState() PanState {
	return v.pan
}

// Scale returns logical units per screen pixel along each axis.
func (v *Viewport) Scale() (sx, sy float64) {
	return v.view.Size.Width / v.container.Width, v.view.Size.Height / v.container.Height
}

// ScreenToLogical converts a container pixel position to canvas units.
func (v *Viewport) ScreenToLogical(screen Point) Point {
	sx, sy := v.Scale()
	return Point{
		X: v.view.Origin.X + screen.X*sx,
		Y: v.view.Origin.Y + screen.Y*sy,
	}
}

// LogicalToScreen converts canvas units to a container pixel position.
func (v *Viewport) LogicalToScreen(p Point) Point {
	sx, sy := v.Scale()
	return Point{
		X: (p.X - v.view.Origin.X) / sx,
		Y: (p.Y - v.view.Origin.Y) / sy,
	}
}

// ZoomAtPoint zooms by exp(±ZoomIntensity) keeping the logical point under the
// screen position fixed on screen.
func (v *Viewport) ZoomAtPoint(screen Point, dir ZoomDirection) {
	factor := math.Exp(ZoomIntensity)
	if dir == ZoomIn {
		factor = math.Exp(-ZoomIntensity)
	}
	v.zoomAbout(v.ScreenToLogical(screen), factor)
}

// ZoomCentered zooms about the current viewport centre using the discrete
// button factors.
func (v *Viewport) ZoomCentered(dir ZoomDirection) {
	factor := ButtonZoomOut
	if dir == ZoomIn {
		factor = ButtonZoomIn
	}
	v.zoomAbout(v.view.Center(), factor)
}

// zoomAbout scales the view by factor around a logical anchor. The factor is
// reduced so the width lands exactly on the zoom bound instead of crossing it.
func (v *Viewport) zoomAbout(anchor Point, factor float64) {
	factor = v.clampFactor(factor)
	if factor == 1 {
		return
	}
	v.view = Extent{
		Origin: anchor.Sub(anchor.Sub(v.view.Origin).Scale(factor)),
		Size: Size{
			Width:  v.view.Size.Width * factor,
			Height: v.view.Size.Height * factor,
		},
	}
}

func (v *Viewport) clampFactor(factor float64) float64 {
	w := v.view.Size.Width
	minW := v.space.Width * MinZoomScale
	maxW := v.space.Width * MaxZoomScale
	switch next := w * factor; {
	case next < minW:
		if w <= minW {
			return 1
		}
		return minW / w
	case next > maxW:
		if w >= maxW {
			return 1
		}
		return maxW / w
	}
	return factor
}

// Reset restores the full-canvas view. An in-progress pan is ended.
func (v *Viewport) Reset() {
	v.view = v.space.Extent()
	v.pan = PanIdle
}

// SetSpace replaces the canvas, for example once a background image has loaded,
// and resets the view to it.
func (v *Viewport) SetSpace(space Space) {
	if !space.Valid() {
		return
	}
	v.space = space
	v.Reset()
}

// Resize records a new container pixel size. The logical view is unchanged.
func (v *Viewport) Resize(container Size) {
	if !container.Valid() {
		return
	}
	v.container = container
}

// BeginPan starts a drag pan. Only the primary button pans; it returns false
// for any other button.
func (v *Viewport) BeginPan(screen Point, button PointerButton) bool {
	if button != ButtonPrimary {
		return false
	}
	v.pan = Panning
	v.panLast = screen
	return true
}

// ContinuePan moves the view opposite to the pointer's screen movement since
// the previous call. It is a no-op unless a pan is in progress.
func (v *Viewport) ContinuePan(screen Point) bool {
	if v.pan != Panning {
		return false
	}
	sx, sy := v.Scale()
	delta := screen.Sub(v.panLast)
	v.view.Origin.X -= delta.X * sx
	v.view.Origin.Y -= delta.Y * sy
	v.panLast = screen
	return true
}

// EndPan ends any pan unconditionally (button release or pointer leaving the container).
func (v *Viewport) EndPan() {
	v.pan = PanIdle
}
