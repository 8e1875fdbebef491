// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package authz provides role-based authorization using Casbin.

The model and policy are embedded (model.conf, policy.csv). Subjects are role
names taken from the JWT claims; roles inherit downwards:

	admin ──▶ operator ──▶ viewer

Permissions:

	viewer    read    dashboard, map, clients, layouts, events
	operator  write   readings, layouts
	admin     delete  layouts

Key Components:

  - Enforcer: casbin.SyncedEnforcer loaded from the embedded files
  - Middleware: Require(object, action) for chi route groups

Usage:

	enforcer, err := authz.NewEnforcer()
	mw := authz.NewMiddleware(enforcer)

	r.With(authMW.Authenticate, mw.Require(authz.ObjReadings, authz.ActWrite)).
		Post("/api/submit-data", h.SubmitData)
*/
package authz
