// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package services adapts components whose lifecycle is not already
Serve(ctx) error to suture v4.

The websocket hub, layout persister, editor session reaper and caches
implement suture.Service themselves. The HTTP server does not: its
ListenAndServe blocks until Shutdown is called, so HTTPServerService runs it
in a goroutine and turns context cancellation into a bounded graceful
shutdown.
*/
package services
