// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package geometry

import "testing"

func TestCollection_AddGetRemove(t *testing.T) {
	t.Parallel()

	c := NewCollection()
	if c.Add(Zone{Shape: ShapeRect}) {
		t.Fatal("Add() with empty id = true, want false")
	}

	a := Zone{ID: "a", Shape: ShapeRect, X: 1}
	b := Zone{ID: "b", Shape: ShapeCircle, R: 10}
	if !c.Add(a) || !c.Add(b) {
		t.Fatal("Add() = false, want true")
	}
	if c.Add(a) {
		t.Error("Add() duplicate = true, want false")
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	got, ok := c.Get("a")
	if !ok || got.X != 1 {
		t.Errorf("Get(a) = %+v, %v", got, ok)
	}

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("Remove(a) twice = true, want false")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) after Remove = found")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCollection_OrderPreserved(t *testing.T) {
	t.Parallel()

	c := NewCollection()
	for _, id := range []string{"z1", "z2", "z3", "z4"} {
		c.Add(Zone{ID: id, Shape: ShapeRect})
	}
	c.Remove("z2")
	c.Replace(Zone{ID: "z3", Shape: ShapeRect, Label: "renamed"})

	snap := c.Snapshot()
	want := []string{"z1", "z3", "z4"}
	if len(snap) != len(want) {
		t.Fatalf("Snapshot() len = %d, want %d", len(snap), len(want))
	}
	for i, id := range want {
		if snap[i].ID != id {
			t.Errorf("Snapshot()[%d].ID = %q, want %q", i, snap[i].ID, id)
		}
	}
	if snap[1].Label != "renamed" {
		t.Errorf("Replace() label = %q, want renamed", snap[1].Label)
	}
}

func TestCollection_UpdateKeepsIdentity(t *testing.T) {
	t.Parallel()

	c := NewCollection()
	c.Add(Zone{ID: "a", Shape: ShapeRect})
	c.Update("a", func(z *Zone) {
		z.ID = "hijacked"
		z.Shape = ShapeCircle
		z.Label = "ok"
	})

	got, ok := c.Get("a")
	if !ok {
		t.Fatal("Get(a) not found after Update")
	}
	if got.ID != "a" || got.Shape != ShapeRect || got.Label != "ok" {
		t.Errorf("Update() = %+v", got)
	}
	if c.Update("missing", func(*Zone) {}) {
		t.Error("Update(missing) = true, want false")
	}
	if c.Replace(Zone{ID: "missing"}) {
		t.Error("Replace(missing) = true, want false")
	}
}

func TestCollection_SnapshotIsolated(t *testing.T) {
	t.Parallel()

	c := NewCollection()
	c.Add(square())

	snap := c.Snapshot()
	snap[0].Points[0] = Pt(-1, -1)

	got, _ := c.Get("sq")
	if got.Points[0] != Pt(0, 0) {
		t.Errorf("Snapshot shares storage: stored vertex now %+v", got.Points[0])
	}
}

func TestCollection_Topmost(t *testing.T) {
	t.Parallel()

	c := NewCollection()
	c.Add(Zone{ID: "bottom", Shape: ShapeRect, X: 0, Y: 0, Width: 100, Height: 100})
	c.Add(Zone{ID: "top", Shape: ShapeCircle, CX: 50, CY: 50, R: 10})

	if z, ok := c.Topmost(Pt(50, 50)); !ok || z.ID != "top" {
		t.Errorf("Topmost(50,50) = %q, %v, want top", z.ID, ok)
	}
	if z, ok := c.Topmost(Pt(5, 5)); !ok || z.ID != "bottom" {
		t.Errorf("Topmost(5,5) = %q, %v, want bottom", z.ID, ok)
	}
	if _, ok := c.Topmost(Pt(500, 500)); ok {
		t.Error("Topmost(outside) found a zone")
	}
}
