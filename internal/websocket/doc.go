// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package websocket provides the two real-time channels of the dashboard.

Key Components:

  - Hub: broadcasts park events (reading_submitted, layout_saved,
    layout_save_failed, layout_deleted) to every event-stream Client
  - Client: one event-stream connection with a read and a write goroutine
  - EditorClient: one zone editor connection; each inbound frame is an
    editor.Command, each outbound frame the resulting editor state

Architecture:

	         ┌──────────┐
	         │   Hub    │ ← BroadcastJSON from API handlers and the layout persister
	         └────┬─────┘
	     ┌────────┼────────┐
	  Client   Client   Client

	  EditorClient ⇄ editor.Session   (one per open editor socket)

Each connection has two goroutines: a read loop that handles inbound frames
and a write loop that drains a buffered send channel and pings every 54s.

Message Types:

  - ping / pong: keepalive from the browser
  - reading_submitted: a utility reading was stored
  - layout_saved / layout_save_failed: outcome of an asynchronous layout save
  - layout_deleted: a saved layout was removed
  - editor_state / editor_error: replies on an editor socket

Throttling:

Pointer-move frames on an editor socket pass through a golang.org/x/time/rate
limiter. A throttled move is held and applied before the next accepted
command, so intermediate positions are skipped but the final one is not.

Thread Safety:

The Hub serialises registration and broadcast in its own goroutine; client
counts are read under a RWMutex. Broadcasts never block the caller.
*/
package websocket
