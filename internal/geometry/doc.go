// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package geometry implements the logical coordinate space shared by the site-plan
viewport and the zone editor.

Key Components:

  - Space: the fixed logical canvas (the background image's natural size)
  - Viewport: the pannable and zoomable window (the SVG viewBox) over a Space
  - Zone: a rectangle, circle or polygon drawn over the site plan
  - Collection: an id-indexed, insertion-ordered set of zones
  - Editor: the draw/edit/move/resize state machine over a Collection

Coordinate Model:

Screen coordinates are container pixels with the origin at the container's top
left corner. Logical coordinates are canvas units. The Viewport converts between
the two; the Editor only ever sees logical coordinates.

	screen (px) ──ScreenToLogical──▶ logical (units) ──▶ Editor
	            ◀──LogicalToScreen──

Failure Model:

Nothing in this package returns an error. Operations whose preconditions do not
hold (resizing with no zone selected, completing a polygon with two vertices,
panning with the secondary button) are silent no-ops and report false where a
caller might care.

Thread Safety:

Viewport and Editor are not safe for concurrent use. Callers that share them
across goroutines (see internal/editor) must serialise access.
*/
package geometry
