// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package geometry

import "testing"

func square() Zone {
	return Zone{
		ID:     "sq",
		Shape:  ShapePolygon,
		Points: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
	}
}

func TestZone_Contains(t *testing.T) {
	t.Parallel()

	rect := Zone{Shape: ShapeRect, X: 10, Y: 10, Width: 20, Height: 10}
	circle := Zone{Shape: ShapeCircle, CX: 0, CY: 0, R: 5}
	triangle := Zone{Shape: ShapePolygon, Points: []Point{{0, 0}, {10, 0}, {0, 10}}}

	tests := []struct {
		name string
		zone Zone
		p    Point
		want bool
	}{
		{"rect inside", rect, Pt(15, 15), true},
		{"rect edge", rect, Pt(30, 20), true},
		{"rect outside", rect, Pt(31, 15), false},
		{"circle inside", circle, Pt(3, 4), true},
		{"circle outside", circle, Pt(4, 4), false},
		{"square inside", square(), Pt(5, 5), true},
		{"square outside", square(), Pt(15, 5), false},
		{"triangle inside", triangle, Pt(2, 2), true},
		{"triangle beyond hypotenuse", triangle, Pt(8, 8), false},
		{"degenerate polygon", Zone{Shape: ShapePolygon, Points: []Point{{0, 0}, {5, 5}}}, Pt(1, 1), false},
		{"unknown shape", Zone{Shape: "hexagon"}, Pt(0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.zone.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestZone_LabelPosition(t *testing.T) {
	t.Parallel()

	rect := Zone{Shape: ShapeRect, X: 10, Y: 20, Width: 40, Height: 20}
	if got := rect.LabelPosition(); got != Pt(30, 30) {
		t.Errorf("rect LabelPosition() = %+v, want (30,30)", got)
	}

	circle := Zone{Shape: ShapeCircle, CX: 7, CY: 8, R: 3}
	if got := circle.LabelPosition(); got != Pt(7, 8) {
		t.Errorf("circle LabelPosition() = %+v, want (7,8)", got)
	}

	poly := square()
	if got := poly.LabelPosition(); got != Pt(5, 5) {
		t.Errorf("polygon LabelPosition() = %+v, want vertex mean (5,5)", got)
	}

	anchor := Pt(1, 2)
	poly.LabelAnchor = &anchor
	if got := poly.LabelPosition(); got != anchor {
		t.Errorf("anchored LabelPosition() = %+v, want %+v", got, anchor)
	}
}

func TestZone_HandleAt(t *testing.T) {
	t.Parallel()

	rect := Zone{Shape: ShapeRect, X: 100, Y: 100, Width: 80, Height: 60}
	tests := []struct {
		p    Point
		want Handle
	}{
		{Pt(100, 100), HandleNW},
		{Pt(182, 98), HandleNE},
		{Pt(101, 161), HandleSW},
		{Pt(180, 160), HandleSE},
		{Pt(140, 130), HandleNone},
	}
	for _, tt := range tests {
		if got := rect.HandleAt(tt.p); got != tt.want {
			t.Errorf("rect HandleAt(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}

	circle := Zone{Shape: ShapeCircle, CX: 50, CY: 50, R: 30}
	if got := circle.HandleAt(Pt(83, 50)); got != HandleE {
		t.Errorf("circle HandleAt(east) = %q, want e", got)
	}
	if got := square().HandleAt(Pt(0, 0)); got != HandleNone {
		t.Errorf("polygon HandleAt() = %q, want none", got)
	}
}

func TestZone_Bounds(t *testing.T) {
	t.Parallel()

	circle := Zone{Shape: ShapeCircle, CX: 50, CY: 40, R: 10}
	want := Extent{Origin: Pt(40, 30), Size: Size{Width: 20, Height: 20}}
	if got := circle.Bounds(); got != want {
		t.Errorf("circle Bounds() = %+v, want %+v", got, want)
	}

	poly := Zone{Shape: ShapePolygon, Points: []Point{{5, 1}, {-3, 4}, {2, 9}}}
	want = Extent{Origin: Pt(-3, 1), Size: Size{Width: 8, Height: 8}}
	if got := poly.Bounds(); got != want {
		t.Errorf("polygon Bounds() = %+v, want %+v", got, want)
	}
}

func TestZone_CloneIsDeep(t *testing.T) {
	t.Parallel()

	anchor := Pt(1, 1)
	z := square()
	z.LabelAnchor = &anchor

	c := z.Clone()
	c.Points[0] = Pt(99, 99)
	c.LabelAnchor.X = 42

	if z.Points[0] != Pt(0, 0) {
		t.Errorf("Clone shares Points: original now %+v", z.Points[0])
	}
	if z.LabelAnchor.X != 1 {
		t.Errorf("Clone shares LabelAnchor: original now %+v", *z.LabelAnchor)
	}
}

func TestShapeKind_Valid(t *testing.T) {
	t.Parallel()

	for _, k := range []ShapeKind{ShapeRect, ShapeCircle, ShapePolygon} {
		if !k.Valid() {
			t.Errorf("%q.Valid() = false", k)
		}
	}
	if ShapeKind("rectangle").Valid() {
		t.Error(`"rectangle".Valid() = true, want false`)
	}
}
