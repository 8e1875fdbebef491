// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package api serves the Parkwatch HTTP API on a Chi router.

Every JSON response uses one envelope:

	{
	  "success": true,
	  "data": {...},
	  "error": {"code": "NOT_FOUND", "message": "...", "details": {...}, "request_id": "..."},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Key Components:

  - Handler: the endpoint implementations, built from Dependencies
  - NewRouter: route table with authentication and RBAC per route
  - ChiMiddleware: go-chi/cors and go-chi/httprate factories
  - ResponseWriter: envelope writer; sentinel errors from lower layers are
    mapped to status codes and error codes with errors.Is

# Routes

	GET    /api/health                         none
	POST   /api/login                          none (login rate limit)
	GET    /api/dashboard                      dashboard:read
	POST   /api/submit-data                    readings:write
	GET    /api/map-data                       map:read
	GET    /api/map-data/nearby                map:read
	GET    /api/clients                        clients:read
	GET    /api/clients/{id}                   clients:read
	GET    /api/layouts                        layouts:read
	GET    /api/layouts/{siteID}               layouts:read
	DELETE /api/layouts/{siteID}               layouts:delete
	POST   /api/editor/sessions                layouts:write
	GET    /api/editor/sessions/{id}           layouts:write
	POST   /api/editor/sessions/{id}/commands  layouts:write
	POST   /api/editor/sessions/{id}/save      layouts:write (202)
	DELETE /api/editor/sessions/{id}           layouts:write
	GET    /api/editor/sessions/{id}/ws        layouts:write (websocket)
	GET    /api/ws                             events:read (websocket)
	GET    /metrics                            none

Dashboard and map responses are cached. Submitting a reading clears both
caches and the nearby-site index, then broadcasts reading_submitted.
*/
package api
