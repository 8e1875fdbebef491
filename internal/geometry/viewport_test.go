// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func pointsClose(a, b Point) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y)
}

func newTestViewport() *Viewport {
	return NewViewport(DefaultSpace(), Size{Width: 500, Height: 400})
}

func TestNewViewport_Defaults(t *testing.T) {
	t.Parallel()

	v := NewViewport(Space{}, Size{})
	got := v.Extent()
	want := Extent{Size: Size{Width: DefaultWidth, Height: DefaultHeight}}
	if got != want {
		t.Errorf("Extent() = %+v, want %+v", got, want)
	}
	if v.Container() != (Size{Width: DefaultWidth, Height: DefaultHeight}) {
		t.Errorf("Container() = %+v, want 1:1 with space", v.Container())
	}
	if got.ViewBox() != "0 0 1000 800" {
		t.Errorf("ViewBox() = %q, want %q", got.ViewBox(), "0 0 1000 800")
	}
}

func TestViewport_ScreenLogicalRoundTrip(t *testing.T) {
	t.Parallel()

	v := newTestViewport()
	v.ZoomAtPoint(Pt(120, 80), ZoomIn)
	v.BeginPan(Pt(10, 10), ButtonPrimary)
	v.ContinuePan(Pt(40, -5))
	v.EndPan()

	for _, screen := range []Point{{0, 0}, {250, 200}, {499, 399}, {33.3, 12.5}} {
		back := v.LogicalToScreen(v.ScreenToLogical(screen))
		if !pointsClose(back, screen) {
			t.Errorf("round trip of %+v = %+v", screen, back)
		}
	}
}

func TestViewport_ZoomAtPointFixedPoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		screen Point
		dir    ZoomDirection
		times  int
	}{
		{"zoom in at origin", Pt(0, 0), ZoomIn, 1},
		{"zoom in off centre", Pt(123, 321), ZoomIn, 3},
		{"zoom out at corner", Pt(500, 400), ZoomOut, 2},
		{"zoom out mid", Pt(250, 10), ZoomOut, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := newTestViewport()
			for i := 0; i < tt.times; i++ {
				before := v.ScreenToLogical(tt.screen)
				v.ZoomAtPoint(tt.screen, tt.dir)
				after := v.LogicalToScreen(before)
				if !pointsClose(after, tt.screen) {
					t.Fatalf("step %d: logical point %+v moved to screen %+v, want %+v", i, before, after, tt.screen)
				}
			}
		})
	}
}

func TestViewport_ZoomAtPointFactor(t *testing.T) {
	t.Parallel()

	v := newTestViewport()
	v.ZoomAtPoint(Pt(250, 200), ZoomIn)
	if got, want := v.Extent().Size.Width, DefaultWidth*math.Exp(-ZoomIntensity); !approxEqual(got, want) {
		t.Errorf("width after zoom in = %v, want %v", got, want)
	}

	v.Reset()
	v.ZoomAtPoint(Pt(250, 200), ZoomOut)
	if got, want := v.Extent().Size.Width, DefaultWidth*math.Exp(ZoomIntensity); !approxEqual(got, want) {
		t.Errorf("width after zoom out = %v, want %v", got, want)
	}
}

func TestViewport_ZoomPreservesAspect(t *testing.T) {
	t.Parallel()

	v := newTestViewport()
	ratio := DefaultWidth / DefaultHeight
	steps := []func(){
		func() { v.ZoomAtPoint(Pt(10, 390), ZoomIn) },
		func() { v.ZoomCentered(ZoomOut) },
		func() { v.ZoomAtPoint(Pt(480, 20), ZoomOut) },
		func() { v.ZoomCentered(ZoomIn) },
	}
	for i, step := range steps {
		step()
		size := v.Extent().Size
		if size.Width <= 0 || size.Height <= 0 {
			t.Fatalf("step %d: non-positive size %+v", i, size)
		}
		if !approxEqual(size.Width/size.Height, ratio) {
			t.Fatalf("step %d: aspect = %v, want %v", i, size.Width/size.Height, ratio)
		}
	}
}

func TestViewport_ZoomCenteredTwice(t *testing.T) {
	t.Parallel()

	v := newTestViewport()
	center := v.Extent().Center()

	v.ZoomCentered(ZoomIn)
	v.ZoomCentered(ZoomIn)

	size := v.Extent().Size
	if !approxEqual(size.Width, 640) || !approxEqual(size.Height, 512) {
		t.Errorf("size = %+v, want 640x512", size)
	}
	if !pointsClose(v.Extent().Center(), center) {
		t.Errorf("center = %+v, want %+v", v.Extent().Center(), center)
	}
}

func TestViewport_ZoomBounds(t *testing.T) {
	t.Parallel()

	v := newTestViewport()
	for i := 0; i < 200; i++ {
		v.ZoomAtPoint(Pt(100, 100), ZoomIn)
	}
	if got, want := v.Extent().Size.Width, DefaultWidth*MinZoomScale; !approxEqual(got, want) {
		t.Errorf("min width = %v, want %v", got, want)
	}

	for i := 0; i < 200; i++ {
		v.ZoomCentered(ZoomOut)
	}
	if got, want := v.Extent().Size.Width, DefaultWidth*MaxZoomScale; !approxEqual(got, want) {
		t.Errorf("max width = %v, want %v", got, want)
	}
	if got, want := v.Extent().Size.Height, DefaultHeight*MaxZoomScale; !approxEqual(got, want) {
		t.Errorf("max height = %v, want %v", got, want)
	}
}

func TestViewport_ZoomBoundKeepsFixedPoint(t *testing.T) {
	t.Parallel()

	v := newTestViewport()
	for i := 0; i < 22; i++ {
		v.ZoomAtPoint(Pt(300, 100), ZoomIn)
	}
	screen := Pt(77, 311)
	before := v.ScreenToLogical(screen)
	v.ZoomAtPoint(screen, ZoomIn)
	v.ZoomAtPoint(screen, ZoomIn)
	if after := v.LogicalToScreen(before); !pointsClose(after, screen) {
		t.Errorf("clamped zoom moved point to %+v, want %+v", after, screen)
	}
}

func TestViewport_Reset(t *testing.T) {
	t.Parallel()

	v := newTestViewport()
	v.ZoomAtPoint(Pt(20, 30), ZoomIn)
	v.ZoomCentered(ZoomOut)
	v.BeginPan(Pt(0, 0), ButtonPrimary)
	v.ContinuePan(Pt(90, 45))

	v.Reset()

	if got, want := v.Extent(), DefaultSpace().Extent(); got != want {
		t.Errorf("Extent() after Reset = %+v, want %+v", got, want)
	}
	if v.PanState() != PanIdle {
		t.Errorf("PanState() after Reset = %v, want idle", v.PanState())
	}
}

func TestViewport_Pan(t *testing.T) {
	t.Parallel()

	v := newTestViewport() // 2 logical units per pixel on both axes

	if v.ContinuePan(Pt(10, 10)) {
		t.Fatal("ContinuePan() while idle = true, want false")
	}

	if v.BeginPan(Pt(100, 100), ButtonSecondary) {
		t.Fatal("BeginPan() with secondary button = true, want false")
	}
	if v.PanState() != PanIdle {
		t.Fatalf("PanState() = %v, want idle", v.PanState())
	}

	if !v.BeginPan(Pt(100, 100), ButtonPrimary) {
		t.Fatal("BeginPan() with primary button = false, want true")
	}
	v.ContinuePan(Pt(110, 105))
	v.ContinuePan(Pt(130, 95))

	// Net drag (+30, -5) px = (+60, -10) units, subtracted from the origin.
	if got, want := v.Extent().Origin, Pt(-60, 10); !pointsClose(got, want) {
		t.Errorf("Origin = %+v, want %+v", got, want)
	}

	v.EndPan()
	v.ContinuePan(Pt(500, 500))
	if got, want := v.Extent().Origin, Pt(-60, 10); !pointsClose(got, want) {
		t.Errorf("Origin after EndPan = %+v, want %+v", got, want)
	}
}

func TestViewport_PanUsesPerAxisScale(t *testing.T) {
	t.Parallel()

	v := NewViewport(DefaultSpace(), Size{Width: 1000, Height: 200}) // 1 unit/px in x, 4 in y
	v.BeginPan(Pt(0, 0), ButtonPrimary)
	v.ContinuePan(Pt(10, 10))

	if got, want := v.Extent().Origin, Pt(-10, -40); !pointsClose(got, want) {
		t.Errorf("Origin = %+v, want %+v", got, want)
	}
}

func TestViewport_SetSpaceAndResize(t *testing.T) {
	t.Parallel()

	v := newTestViewport()
	v.SetSpace(SpaceForImage(2400, 1600))
	if got := v.Extent().ViewBox(); got != "0 0 2400 1600" {
		t.Errorf("ViewBox() = %q, want %q", got, "0 0 2400 1600")
	}

	v.SetSpace(Space{Width: -1, Height: 10})
	if v.Space() != (Space{Width: 2400, Height: 1600}) {
		t.Errorf("invalid SetSpace changed space to %+v", v.Space())
	}

	v.Resize(Size{Width: 1200, Height: 800})
	sx, sy := v.Scale()
	if !approxEqual(sx, 2) || !approxEqual(sy, 2) {
		t.Errorf("Scale() = (%v, %v), want (2, 2)", sx, sy)
	}

	v.Resize(Size{Width: 0, Height: 800})
	if v.Container() != (Size{Width: 1200, Height: 800}) {
		t.Errorf("invalid Resize changed container to %+v", v.Container())
	}
}

func TestSpaceForImage(t *testing.T) {
	t.Parallel()

	if got := SpaceForImage(0, 10); got != DefaultSpace() {
		t.Errorf("SpaceForImage(0, 10) = %+v, want default", got)
	}
	if got := SpaceForImage(640, 480); got != (Space{Width: 640, Height: 480}) {
		t.Errorf("SpaceForImage(640, 480) = %+v", got)
	}
}

func TestZoomDirectionString(t *testing.T) {
	t.Parallel()

	if ZoomIn.String() != "in" || ZoomOut.String() != "out" {
		t.Errorf("String() = %q/%q", ZoomIn.String(), ZoomOut.String())
	}
	if math.Abs(ButtonZoomIn*ButtonZoomOut-1) > epsilon {
		t.Errorf("button factors are not inverse: %v * %v", ButtonZoomIn, ButtonZoomOut)
	}
}
