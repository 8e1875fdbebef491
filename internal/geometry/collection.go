// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package geometry

// Collection is an insertion-ordered set of zones indexed by id.
// List order is draw order: later zones render above earlier ones.
type Collection struct {
	byID  map[string]*Zone
	order []string
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{byID: make(map[string]*Zone)}
}

// Len returns the number of zones.
func (c *Collection) Len() int {
	return len(c.order)
}

// Add appends a copy of z. It returns false if the id is empty or taken.
func (c *Collection) Add(z Zone) bool {
	if z.ID == "" {
		return false
	}
	if _, exists := c.byID[z.ID]; exists {
		return false
	}
	clone := z.Clone()
	c.byID[z.ID] = &clone
	c.order = append(c.order, z.ID)
	return true
}

// Get returns a copy of the zone with the given id.
func (c *Collection) Get(id string) (Zone, bool) {
	z, ok := c.byID[id]
	if !ok {
		return Zone{}, false
	}
	return z.Clone(), true
}

// Has reports whether id is present.
func (c *Collection) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Replace overwrites an existing zone in place, keeping its position.
func (c *Collection) Replace(z Zone) bool {
	if _, ok := c.byID[z.ID]; !ok {
		return false
	}
	clone := z.Clone()
	c.byID[z.ID] = &clone
	return true
}

// Update applies fn to the stored zone. The id and shape cannot be changed.
func (c *Collection) Update(id string, fn func(*Zone)) bool {
	z, ok := c.byID[id]
	if !ok {
		return false
	}
	shape := z.Shape
	fn(z)
	z.ID, z.Shape = id, shape
	return true
}

// Remove deletes the zone with the given id.
func (c *Collection) Remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Snapshot returns deep copies of every zone in draw order.
func (c *Collection) Snapshot() []Zone {
	out := make([]Zone, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].Clone())
	}
	return out
}

// Topmost returns the last-drawn zone containing p.
func (c *Collection) Topmost(p Point) (Zone, bool) {
	for i := len(c.order) - 1; i >= 0; i-- {
		z := c.byID[c.order[i]]
		if z.Contains(p) {
			return z.Clone(), true
		}
	}
	return Zone{}, false
}
