// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/parkwatch/internal/models"
)

const readingColumns = `id, client_id, reading_date, water_usage, pac_usage, polymer_usage,
	chlorine_usage, notes, created_at`

func scanReadingRow(scanner interface {
	Scan(dest ...interface{}) error
}) (models.UtilityReading, error) {
	var r models.UtilityReading
	var date time.Time
	err := scanner.Scan(&r.ID, &r.ClientID, &date, &r.WaterUsage, &r.PacUsage,
		&r.PolymerUsage, &r.ChlorineUsage, &r.Notes, &r.CreatedAt)
	if err != nil {
		return r, err
	}
	r.Date = date.Format(DateLayout)
	return r, nil
}

// InsertReading stores one day of usage for an existing client and fills in
// the reading's id and creation time.
func (db *DB) InsertReading(ctx context.Context, r *models.UtilityReading) (err error) {
	defer observe("insert", "utility_readings", time.Now(), &err)

	if _, err = parseDate(r.Date); err != nil {
		return err
	}

	ok, err := db.clientExists(ctx, r.ClientID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %d", ErrClientNotFound, r.ClientID)
	}

	r.CreatedAt = db.now()
	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO utility_readings (client_id, reading_date, water_usage, pac_usage,
			polymer_usage, chlorine_usage, notes, created_at)
		VALUES (?, CAST(? AS DATE), ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		r.ClientID, r.Date, r.WaterUsage, r.PacUsage, r.PolymerUsage, r.ChlorineUsage, r.Notes, r.CreatedAt,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}
	return nil
}

// ListReadings returns up to limit readings of a client, newest first.
// A non-positive limit returns all of them.
func (db *DB) ListReadings(ctx context.Context, clientID int64, limit int) ([]models.UtilityReading, error) {
	query := `SELECT ` + readingColumns + ` FROM utility_readings WHERE client_id = ?
		ORDER BY reading_date DESC, id DESC`
	args := []interface{}{clientID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer closeQuietly(rows)

	readings := []models.UtilityReading{}
	for rows.Next() {
		r, err := scanReadingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate readings: %w", err)
	}
	return readings, nil
}

// reverse returns s in the opposite order without modifying it.
func reverse[T any](s []T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// chartLabel turns a stored date into a "Jan 2" chart label.
func chartLabel(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(chartLabelLayout)
}
