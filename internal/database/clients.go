// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/parkwatch/internal/models"
)

const clientColumns = `id, name, plot_number, industry, status, latitude, longitude,
	contact_name, contact_position, email, phone, notes, created_at, updated_at`

func scanClientRow(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Client, error) {
	c := &models.Client{}
	var status string
	err := scanner.Scan(
		&c.ID, &c.Name, &c.PlotNumber, &c.Industry, &status, &c.Latitude, &c.Longitude,
		&c.ContactName, &c.Position, &c.Email, &c.Phone, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = models.ParseStatus(status)
	return c, nil
}

// ListClients returns every client ordered by plot number.
func (db *DB) ListClients(ctx context.Context) ([]models.Client, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY plot_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer closeQuietly(rows)

	clients := []models.Client{}
	for rows.Next() {
		c, err := scanClientRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return clients, nil
}

// GetClient loads one client.
func (db *DB) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	c, err := scanClientRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrClientNotFound, id)
		}
		return nil, fmt.Errorf("failed to query client: %w", err)
	}
	return c, nil
}

// CreateClient inserts c and fills in its id and timestamps. Statuses are
// normalised through models.ParseStatus.
func (db *DB) CreateClient(ctx context.Context, c *models.Client) error {
	c.Status = models.ParseStatus(string(c.Status))
	now := db.now()
	c.CreatedAt, c.UpdatedAt = now, now

	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO clients (name, plot_number, industry, status, latitude, longitude,
			contact_name, contact_position, email, phone, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		c.Name, c.PlotNumber, c.Industry, string(c.Status), c.Latitude, c.Longitude,
		c.ContactName, c.Position, c.Email, c.Phone, c.Notes, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

// UpdateClientStatus changes a client's operating status.
func (db *DB) UpdateClientStatus(ctx context.Context, id int64, status models.Status) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE clients SET status = ?, updated_at = ? WHERE id = ?`,
		string(models.ParseStatus(string(status))), db.now(), id)
	if err != nil {
		return fmt.Errorf("failed to update client status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrClientNotFound, id)
	}
	return nil
}

func (db *DB) clientExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) > 0 FROM clients WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check client: %w", err)
	}
	return exists, nil
}
