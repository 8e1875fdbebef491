// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package geometry

import "math"

// MinShapeSize is the smallest width, height or radius a zone may have.
const MinShapeSize = 10.0

// HandleRadius is the hit radius around a resize handle, in logical units.
const HandleRadius = 5.0

// MinPolygonVertices is the vertex count required to complete a polygon.
const MinPolygonVertices = 3

// Palette holds the fill colors assigned to newly drawn zones.
var Palette = []string{
	"#3B82F6", // blue
	"#10B981", // green
	"#F59E0B", // amber
	"#EF4444", // red
	"#8B5CF6", // purple
	"#EC4899", // pink
	"#F97316", // orange
	"#14B8A6", // teal
}

// ShapeKind identifies a zone's geometry.
type ShapeKind string

const (
	ShapeRect    ShapeKind = "rect"
	ShapeCircle  ShapeKind = "circle"
	ShapePolygon ShapeKind = "polygon"
)

// Valid reports whether k is a known shape kind.
func (k ShapeKind) Valid() bool {
	switch k {
	case ShapeRect, ShapeCircle, ShapePolygon:
		return true
	}
	return false
}

// Handle names a resize anchor. Rectangles have four corner handles, circles a
// single radius handle on their east edge, polygons none.
type Handle string

const (
	HandleNone Handle = ""
	HandleNW   Handle = "nw"
	HandleNE   Handle = "ne"
	HandleSW   Handle = "sw"
	HandleSE   Handle = "se"
	HandleE    Handle = "e"
)

// Zone is one drawable region. Only the fields for its Shape are meaningful.
type Zone struct {
	ID    string    `json:"id"`
	Shape ShapeKind `json:"shape"`

	// Rectangle
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Circle
	CX float64 `json:"cx,omitempty"`
	CY float64 `json:"cy,omitempty"`
	R  float64 `json:"r,omitempty"`

	// Polygon
	Points []Point `json:"points,omitempty"`

	Label       string `json:"label"`
	LabelAnchor *Point `json:"label_anchor,omitempty"`
	Color       string `json:"color"`
}

// Clone returns a deep copy.
func (z Zone) Clone() Zone {
	c := z
	if z.Points != nil {
		c.Points = append([]Point(nil), z.Points...)
	}
	if z.LabelAnchor != nil {
		anchor := *z.LabelAnchor
		c.LabelAnchor = &anchor
	}
	return c
}

// Contains reports whether the logical point p lies on or inside the zone.
func (z Zone) Contains(p Point) bool {
	switch z.Shape {
	case ShapeRect:
		return Extent{Origin: Pt(z.X, z.Y), Size: Size{Width: z.Width, Height: z.Height}}.Contains(p)
	case ShapeCircle:
		return Pt(z.CX, z.CY).DistanceTo(p) <= z.R
	case ShapePolygon:
		return polygonContains(z.Points, p)
	}
	return false
}

// polygonContains is the even-odd ray casting test.
func polygonContains(pts []Point, p Point) bool {
	if len(pts) < MinPolygonVertices {
		return false
	}
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the axis-aligned bounding box of the zone.
func (z Zone) Bounds() Extent {
	switch z.Shape {
	case ShapeRect:
		return Extent{Origin: Pt(z.X, z.Y), Size: Size{Width: z.Width, Height: z.Height}}
	case ShapeCircle:
		return Extent{Origin: Pt(z.CX-z.R, z.CY-z.R), Size: Size{Width: 2 * z.R, Height: 2 * z.R}}
	case ShapePolygon:
		if len(z.Points) == 0 {
			return Extent{}
		}
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, pt := range z.Points {
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
			minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		}
		return Extent{Origin: Pt(minX, minY), Size: Size{Width: maxX - minX, Height: maxY - minY}}
	}
	return Extent{}
}

// LabelPosition is where the zone's label is centred: the middle of a
// rectangle, the centre of a circle, and for a polygon its label anchor or,
// when unset, the mean of its vertices.
func (z Zone) LabelPosition() Point {
	switch z.Shape {
	case ShapeRect:
		return Pt(z.X+z.Width/2, z.Y+z.Height/2)
	case ShapeCircle:
		return Pt(z.CX, z.CY)
	}
	if z.LabelAnchor != nil {
		return *z.LabelAnchor
	}
	if len(z.Points) == 0 {
		return Point{}
	}
	var sum Point
	for _, pt := range z.Points {
		sum = sum.Add(pt)
	}
	return sum.Scale(1 / float64(len(z.Points)))
}

// HandlePositions returns the resize handles of the zone keyed by name.
func (z Zone) HandlePositions() map[Handle]Point {
	switch z.Shape {
	case ShapeRect:
		return map[Handle]Point{
			HandleNW: Pt(z.X, z.Y),
			HandleNE: Pt(z.X+z.Width, z.Y),
			HandleSW: Pt(z.X, z.Y+z.Height),
			HandleSE: Pt(z.X+z.Width, z.Y+z.Height),
		}
	case ShapeCircle:
		return map[Handle]Point{HandleE: Pt(z.CX+z.R, z.CY)}
	}
	return nil
}

// HandleAt returns the handle within HandleRadius of p, or HandleNone.
// Corners are checked in a fixed order so overlapping handles on tiny
// rectangles resolve deterministically.
func (z Zone) HandleAt(p Point) Handle {
	handles := z.HandlePositions()
	for _, h := range []Handle{HandleSE, HandleNE, HandleSW, HandleNW, HandleE} {
		pos, ok := handles[h]
		if ok && pos.DistanceTo(p) <= HandleRadius {
			return h
		}
	}
	return HandleNone
}

// anchor is the reference point captured when a move starts.
func (z Zone) anchor() Point {
	if z.Shape == ShapeCircle {
		return Pt(z.CX, z.CY)
	}
	return Pt(z.X, z.Y)
}

// translateVertices shifts every polygon vertex and the label anchor by d.
func (z *Zone) translateVertices(d Point) {
	for i := range z.Points {
		z.Points[i] = z.Points[i].Add(d)
	}
	if z.LabelAnchor != nil {
		moved := z.LabelAnchor.Add(d)
		z.LabelAnchor = &moved
	}
}

// clamp enforces the minimum size on rectangles and circles.
func (z *Zone) clamp() {
	switch z.Shape {
	case ShapeRect:
		z.Width = math.Max(MinShapeSize, z.Width)
		z.Height = math.Max(MinShapeSize, z.Height)
	case ShapeCircle:
		z.R = math.Max(MinShapeSize, z.R)
	}
}

// resize applies a handle drag to the zone. Rectangles keep the corner opposite
// the handle fixed; circles take the pointer distance as their radius.
func (z *Zone) resize(h Handle, p Point) {
	switch z.Shape {
	case ShapeRect:
		right, bottom := z.X+z.Width, z.Y+z.Height
		switch h {
		case HandleNW:
			z.Width = math.Max(MinShapeSize, right-p.X)
			z.Height = math.Max(MinShapeSize, bottom-p.Y)
			z.X, z.Y = right-z.Width, bottom-z.Height
		case HandleNE:
			z.Width = math.Max(MinShapeSize, p.X-z.X)
			z.Height = math.Max(MinShapeSize, bottom-p.Y)
			z.Y = bottom - z.Height
		case HandleSW:
			z.Width = math.Max(MinShapeSize, right-p.X)
			z.Height = math.Max(MinShapeSize, p.Y-z.Y)
			z.X = right - z.Width
		case HandleSE:
			z.Width = math.Max(MinShapeSize, p.X-z.X)
			z.Height = math.Max(MinShapeSize, p.Y-z.Y)
		}
	case ShapeCircle:
		if h == HandleE {
			z.R = math.Max(MinShapeSize, Pt(z.CX, z.CY).DistanceTo(p))
		}
	}
}
