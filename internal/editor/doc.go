// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package editor hosts server-side zone editing sessions.

A Session pairs a geometry.Editor with a geometry.Viewport for one site and
one operator. Browser input arrives as Commands over HTTP or the editor
websocket; Apply converts screen coordinates to logical ones through the
viewport, routes the command to the viewport or the editor, and returns the
resulting State for rendering.

Key Components:

  - Command: a single pointer, wheel, zoom, draw, edit or label instruction
  - Session: mutex-guarded editor and viewport, plus per-zone statuses
  - State: the render model (viewBox, zones with status colours, drafts)
  - Manager: session registry with a TTL reaper that runs as a suture service

# Pointer Routing

A primary-button pointer_down goes to the editor when drawing, or when it
lands on the zone being edited (body or resize handle). Otherwise it starts a
viewport pan. pointer_up and pointer_leave end both.

# Saving

Session.Save snapshots the zones through Editor.Save, converts them to
layout documents and hands the layout to a Saver (the layout persister). It
returns the version the layout will be stored under without waiting for the
write.

# Thread Safety

Session and Manager are safe for concurrent use.
*/
package editor
