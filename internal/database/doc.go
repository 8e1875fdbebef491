// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package database provides the DuckDB store behind Parkwatch's utility data.

Tables:
  - users: login accounts with bcrypt password hashes and a role
  - clients: park tenants with plot, status, contact details and coordinates
  - utility_readings: one row per client per day of water and chemical usage

Key Components:

  - DB: connection wrapper created by New; Close, Ping and Conn
  - Users: GetUserByUsername, CreateUser, CountUsers
  - Clients: ListClients, GetClient, CreateClient, UpdateClientStatus
  - Readings: InsertReading, ListReadings
  - Aggregates: GetDashboardData, GetMapData, GetClientDetail
  - Seed: idempotent demo data for development and tests

Reading dates are stored as DATE and exchanged as YYYY-MM-DD strings. Chart
labels use the "Jan 2" layout and table rows "Jan 2, 2006".

Sentinel errors (ErrUserNotFound, ErrUserExists, ErrClientNotFound,
ErrInvalidDate) are wrapped with context and matched with errors.Is.
*/
package database
