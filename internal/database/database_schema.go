// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package database

import (
	"context"
	"fmt"
	"time"
)

func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// Reading existence is checked in InsertReading rather than by a foreign key,
// so status updates on clients never collide with DuckDB's constraint checks.
var tableCreationQueries = []string{
	`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE SEQUENCE IF NOT EXISTS clients_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS clients (
		id BIGINT PRIMARY KEY DEFAULT nextval('clients_id_seq'),
		name TEXT NOT NULL,
		plot_number TEXT NOT NULL UNIQUE,
		industry TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'unknown',
		latitude DOUBLE NOT NULL DEFAULT 0,
		longitude DOUBLE NOT NULL DEFAULT 0,
		contact_name TEXT NOT NULL DEFAULT '',
		contact_position TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,

	`CREATE SEQUENCE IF NOT EXISTS readings_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS utility_readings (
		id BIGINT PRIMARY KEY DEFAULT nextval('readings_id_seq'),
		client_id BIGINT NOT NULL,
		reading_date DATE NOT NULL,
		water_usage DOUBLE NOT NULL DEFAULT 0,
		pac_usage DOUBLE NOT NULL DEFAULT 0,
		polymer_usage DOUBLE NOT NULL DEFAULT 0,
		chlorine_usage DOUBLE NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_readings_client_date ON utility_readings(client_id, reading_date)`,
	`CREATE INDEX IF NOT EXISTS idx_readings_date ON utility_readings(reading_date)`,
}
