// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package models defines the data structures shared across Parkwatch.

Key Components:

  - Status: canonical site and zone status with an adapter for legacy labels
  - User, Client, UtilityReading: database records
  - DashboardData, MapData, ClientDetailResponse: aggregate API payloads
  - ZoneDocument, SiteLayout: the persisted form of editor zones

Model Categories:

1. Database Models (internal/database):
  - User: login account with a bcrypt password hash and a role
  - Client: an industrial-park tenant occupying a plot
  - UtilityReading: one day of water and chemical usage for a client

2. API Payloads (internal/api):
  - DashboardData, MapData, NearbySite, ClientDetailResponse

3. Layout Documents (internal/zonestore):
  - SiteLayout holds a site's zones as ZoneDocuments. Rectangles and circles
    are stored as point lists; see ZoneToDocument for the encoding.
*/
package models
