// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package geometry

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Mode is the editor's interaction state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeEditing
	ModeMoving
	ModeResizing
)

var modeNames = map[Mode]string{
	ModeIdle:     "idle",
	ModeDrawing:  "drawing",
	ModeEditing:  "editing",
	ModeMoving:   "moving",
	ModeResizing: "resizing",
}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// SaveFunc receives the zone collection when the editor saves. It owns the
// slice it is handed.
type SaveFunc func(zones []Zone)

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithIDGenerator overrides the zone id generator.
func WithIDGenerator(fn func() string) EditorOption {
	return func(e *Editor) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithColorPicker overrides how new zones pick their fill color.
func WithColorPicker(fn func() string) EditorOption {
	return func(e *Editor) {
		if fn != nil {
			e.pickColor = fn
		}
	}
}

// Editor is the zone drawing and editing state machine.
//
//	Idle ──SetDrawMode──▶ Drawing ──CancelDrawing──▶ Idle
//	Idle ──StartEditing──▶ Editing ──PointerDown(body)──▶ Moving ──PointerUp──▶ Editing
//	                       Editing ──PointerDown(handle)─▶ Resizing ─PointerUp─▶ Editing
//	                       Editing ──DoneEditing──▶ Idle
//
// All coordinates are logical. Operations whose preconditions do not hold are
// ignored.
type Editor struct {
	space Space
	zones *Collection

	drawing   bool
	drawKind  ShapeKind
	draft     *Zone
	draftFrom Point
	polygon   []Point

	editingID string
	moving    bool
	handle    Handle
	offset    Point
	last      Point

	newID     func() string
	pickColor func() string
}

// NewEditor returns an idle editor over the given space with no zones.
func NewEditor(space Space, opts ...EditorOption) *Editor {
	if !space.Valid() {
		space = DefaultSpace()
	}
	e := &Editor{
		space: space,
		zones: NewCollection(),
		newID: func() string {
			return "zone_" + uuid.NewString()
		},
		pickColor: func() string {
			return Palette[rand.IntN(len(Palette))]
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Space returns the logical canvas.
func (e *Editor) Space() Space {
	return e.space
}

// SetSpace replaces the logical canvas after a background image loads.
// Existing zones keep their coordinates.
func (e *Editor) SetSpace(space Space) {
	if space.Valid() {
		e.space = space
	}
}

// Load replaces the collection, for example with a previously saved layout,
// and returns the editor to Idle. Zones with duplicate or empty ids are skipped.
func (e *Editor) Load(zones []Zone) int {
	e.zones = NewCollection()
	e.resetInteraction()
	e.drawing = false
	loaded := 0
	for _, z := range zones {
		if z.Shape.Valid() && e.zones.Add(z) {
			loaded++
		}
	}
	return loaded
}

// Mode reports the current state.
func (e *Editor) Mode() Mode {
	switch {
	case e.drawing:
		return ModeDrawing
	case e.editingID == "":
		return ModeIdle
	case e.moving:
		return ModeMoving
	case e.handle != HandleNone:
		return ModeResizing
	}
	return ModeEditing
}

// DrawKind returns the shape kind used in draw mode.
func (e *Editor) DrawKind() ShapeKind {
	return e.drawKind
}

// EditingID returns the id of the zone being edited, or "".
func (e *Editor) EditingID() string {
	return e.editingID
}

// ActiveHandle returns the handle being dragged, or HandleNone.
func (e *Editor) ActiveHandle() Handle {
	return e.handle
}

// Zones returns a copy of the collection in draw order.
func (e *Editor) Zones() []Zone {
	return e.zones.Snapshot()
}

// Zone returns a copy of a single zone.
func (e *Editor) Zone(id string) (Zone, bool) {
	return e.zones.Get(id)
}

// Len returns the number of committed zones.
func (e *Editor) Len() int {
	return e.zones.Len()
}

// Draft returns the rectangle or circle currently being dragged out.
func (e *Editor) Draft() (Zone, bool) {
	if e.draft == nil {
		return Zone{}, false
	}
	return e.draft.Clone(), true
}

// PolygonDraft returns the vertices placed so far for a polygon.
func (e *Editor) PolygonDraft() []Point {
	return append([]Point(nil), e.polygon...)
}

// SetDrawMode enters Drawing for the given shape kind. Any zone being edited is
// released first. Switching kinds discards the current draft.
func (e *Editor) SetDrawMode(kind ShapeKind) bool {
	if !kind.Valid() {
		return false
	}
	if e.drawKind != kind {
		e.clearDraft()
	}
	e.resetInteraction()
	e.drawing = true
	e.drawKind = kind
	return true
}

// CancelDrawing discards any draft and leaves draw mode.
func (e *Editor) CancelDrawing() {
	e.clearDraft()
	e.drawing = false
}

// StartEditing selects a committed zone. It is ignored in draw mode.
func (e *Editor) StartEditing(id string) bool {
	if e.drawing || !e.zones.Has(id) {
		return false
	}
	e.resetInteraction()
	e.editingID = id
	return true
}

// SelectAt starts editing the topmost zone under p.
func (e *Editor) SelectAt(p Point) (string, bool) {
	if e.drawing {
		return "", false
	}
	z, ok := e.zones.Topmost(p)
	if !ok {
		return "", false
	}
	return z.ID, e.StartEditing(z.ID)
}

// DoneEditing releases the edited zone and returns to Idle.
func (e *Editor) DoneEditing() {
	e.resetInteraction()
}

// FinishAction ends a move or resize, leaving the zone selected.
func (e *Editor) FinishAction() {
	e.moving = false
	e.handle = HandleNone
}

// HitTest reports which zone and, for the zone being edited, which handle lie
// under p. Handles take precedence over bodies.
func (e *Editor) HitTest(p Point) (string, Handle) {
	if z, ok := e.zones.Get(e.editingID); ok {
		if h := z.HandleAt(p); h != HandleNone {
			return z.ID, h
		}
	}
	if z, ok := e.zones.Topmost(p); ok {
		return z.ID, HandleNone
	}
	return "", HandleNone
}

// PointerDown handles a primary button press at logical point p.
//
// In draw mode it anchors a rectangle or circle draft, or appends a polygon
// vertex. While editing it grabs a resize handle or, on the zone body, starts a
// move.
func (e *Editor) PointerDown(p Point) {
	if e.drawing {
		e.beginDraft(p)
		return
	}
	z, ok := e.zones.Get(e.editingID)
	if !ok {
		return
	}
	if h := z.HandleAt(p); h != HandleNone {
		e.handle = h
		return
	}
	if !z.Contains(p) {
		return
	}
	e.moving = true
	e.offset = p.Sub(z.anchor())
	e.last = p
}

func (e *Editor) beginDraft(p Point) {
	if e.drawKind == ShapePolygon {
		e.polygon = append(e.polygon, p)
		return
	}
	z := Zone{
		ID:    e.newID(),
		Shape: e.drawKind,
		Label: e.nextLabel(),
		Color: e.pickColor(),
	}
	if e.drawKind == ShapeRect {
		z.X, z.Y = p.X, p.Y
	} else {
		z.CX, z.CY = p.X, p.Y
	}
	e.draft = &z
	e.draftFrom = p
}

// PointerMove sizes the draft, moves the edited zone or resizes it, depending
// on the current mode.
func (e *Editor) PointerMove(p Point) {
	switch {
	case e.drawing && e.draft != nil:
		e.sizeDraft(p)
	case e.moving:
		e.moveTo(p)
	case e.handle != HandleNone:
		h := e.handle
		e.zones.Update(e.editingID, func(z *Zone) { z.resize(h, p) })
	}
}

func (e *Editor) sizeDraft(p Point) {
	switch e.draft.Shape {
	case ShapeRect:
		e.draft.Width = math.Max(MinShapeSize, p.X-e.draftFrom.X)
		e.draft.Height = math.Max(MinShapeSize, p.Y-e.draftFrom.Y)
	case ShapeCircle:
		e.draft.R = math.Max(MinShapeSize, e.draftFrom.DistanceTo(p))
	}
}

// moveTo places rectangles and circles at pointer minus the captured offset.
// Polygons have no single anchor, so they are translated by the delta since
// the previous pointer event.
func (e *Editor) moveTo(p Point) {
	offset, last := e.offset, e.last
	e.zones.Update(e.editingID, func(z *Zone) {
		switch z.Shape {
		case ShapeRect:
			z.X, z.Y = p.X-offset.X, p.Y-offset.Y
		case ShapeCircle:
			z.CX, z.CY = p.X-offset.X, p.Y-offset.Y
		case ShapePolygon:
			z.translateVertices(p.Sub(last))
		}
	})
	e.last = p
}

// PointerUp commits a rectangle or circle draft, or ends a move or resize.
// Polygons are committed only through CompletePolygon.
func (e *Editor) PointerUp(p Point) {
	if e.drawing {
		if e.draft != nil {
			e.sizeDraft(p)
			e.commit(*e.draft)
			e.draft = nil
		}
		return
	}
	e.FinishAction()
}

// PointerLeave ends a move or resize when the pointer leaves the canvas. A
// draft in progress is kept.
func (e *Editor) PointerLeave() {
	e.FinishAction()
}

// CompletePolygon commits the polygon draft. It returns false, leaving the
// draft untouched, unless at least MinPolygonVertices have been placed.
func (e *Editor) CompletePolygon() (Zone, bool) {
	if !e.drawing || e.drawKind != ShapePolygon || len(e.polygon) < MinPolygonVertices {
		return Zone{}, false
	}
	z := Zone{
		ID:     e.newID(),
		Shape:  ShapePolygon,
		Points: e.polygon,
		Label:  e.nextLabel(),
		Color:  e.pickColor(),
	}
	e.polygon = nil
	return e.commit(z)
}

// commit clamps z to the minimum size and appends it, drawing a fresh id on
// collision.
func (e *Editor) commit(z Zone) (Zone, bool) {
	z.clamp()
	for e.zones.Has(z.ID) {
		z.ID = e.newID()
	}
	if !e.zones.Add(z) {
		return Zone{}, false
	}
	return z.Clone(), true
}

// UpdateLabel renames a zone.
func (e *Editor) UpdateLabel(id, label string) bool {
	return e.zones.Update(id, func(z *Zone) { z.Label = label })
}

// SetLabelAnchor pins a polygon's label position.
func (e *Editor) SetLabelAnchor(id string, p Point) bool {
	return e.zones.Update(id, func(z *Zone) {
		if z.Shape == ShapePolygon {
			anchor := p
			z.LabelAnchor = &anchor
		}
	})
}

// DeleteZone removes a zone. Deleting the zone being edited clears the editing
// state; deleting any other zone leaves it alone.
func (e *Editor) DeleteZone(id string) bool {
	if !e.zones.Remove(id) {
		return false
	}
	if e.editingID == id {
		e.resetInteraction()
	}
	return true
}

// Save hands a copy of the collection to fn. The editor does not wait on or
// inspect the outcome.
func (e *Editor) Save(fn SaveFunc) {
	if fn == nil {
		return
	}
	fn(e.zones.Snapshot())
}

func (e *Editor) nextLabel() string {
	return fmt.Sprintf("Zone %d", e.zones.Len()+1)
}

func (e *Editor) clearDraft() {
	e.draft = nil
	e.polygon = nil
}

func (e *Editor) resetInteraction() {
	e.editingID = ""
	e.moving = false
	e.handle = HandleNone
}
