// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package supervisor runs every long-lived component of Parkwatch under a
suture v4 supervisor tree.

# Overview

	RootSupervisor ("parkwatch")
	├── DataSupervisor ("data-layer")
	│   ├── layout-persister       (zonestore.Persister)
	│   ├── cache-dashboard        (cache.Cache pruner)
	│   └── cache-map              (cache.Cache pruner)
	├── RealtimeSupervisor ("realtime-layer")
	│   ├── websocket-hub          (websocket.Hub)
	│   └── editor-session-reaper  (editor.Manager)
	└── APISupervisor ("api-layer")
	    └── http-server            (services.HTTPServerService)

Each component implements suture.Service directly (Serve(ctx) error plus
String() for log identification); only the HTTP server needs the adapter in
the services subpackage.

# Events

Supervisor events (service panics, restarts, backoff) are logged through
sutureslog, bridged to zerolog with logging.NewSlogLogger.

# Shutdown

Canceling the context passed to Serve stops the tree. Services get
ShutdownTimeout to return; stragglers are listed by UnstoppedServiceReport.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(persister)
	tree.AddRealtimeService(hub)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
