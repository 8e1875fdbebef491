// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/parkwatch/internal/logging"
	"github.com/tomtom215/parkwatch/internal/models"
)

// PasswordHasher turns a plaintext password into a stored hash.
type PasswordHasher func(password string) (string, error)

// SeedDays is the number of days of readings seeded per client.
const SeedDays = 30

type seedUser struct {
	username, password, role string
}

var seedUsers = []seedUser{
	{"admin", "admin", models.RoleAdmin},
	{"operator", "operator", models.RoleOperator},
	{"line_user", "line_password", models.RoleOperator},
}

var seedClients = []models.Client{
	{Name: "Site A", PlotNumber: "A-101", Industry: "Food Processing", Status: models.StatusGood,
		Latitude: 13.7563, Longitude: 100.5018, ContactName: "Somchai P.", Position: "Plant Manager",
		Email: "site-a@example.com", Phone: "+66 2 000 0101"},
	{Name: "Site B", PlotNumber: "B-201", Industry: "Electronics Assembly", Status: models.StatusWarning,
		Latitude: 13.7663, Longitude: 100.5118, ContactName: "Nok S.", Position: "Facilities Lead",
		Email: "site-b@example.com", Phone: "+66 2 000 0201"},
	{Name: "Site C", PlotNumber: "C-301", Industry: "Textiles", Status: models.StatusGood,
		Latitude: 13.7463, Longitude: 100.4918, ContactName: "Anan K.", Position: "Operations",
		Email: "site-c@example.com", Phone: "+66 2 000 0301"},
	{Name: "Site D", PlotNumber: "D-401", Industry: "Chemicals", Status: models.StatusDanger,
		Latitude: 13.7363, Longitude: 100.5218, ContactName: "Pim T.", Position: "EHS Officer",
		Email: "site-d@example.com", Phone: "+66 2 000 0401"},
}

// seedReading is the deterministic usage of day i (0 = oldest).
func seedReading(i int) (water, pac, polymer, chlorine float64) {
	return float64(150 + (i%10)*20), float64(5 + i%5), float64(2 + i%3), float64(1 + i%2)
}

// Seed loads demo users, clients and SeedDays of readings per client ending
// today. Each part is skipped when its table already has rows, so calling
// Seed on every start is safe.
func (db *DB) Seed(ctx context.Context, hash PasswordHasher) error {
	users, err := db.CountUsers(ctx)
	if err != nil {
		return err
	}
	if users == 0 {
		for _, su := range seedUsers {
			h, err := hash(su.password)
			if err != nil {
				return fmt.Errorf("failed to hash seed password: %w", err)
			}
			if _, err := db.CreateUser(ctx, su.username, h, su.role); err != nil {
				return fmt.Errorf("failed to seed user %s: %w", su.username, err)
			}
		}
	}

	var clients int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&clients); err != nil {
		return fmt.Errorf("failed to count clients: %w", err)
	}
	if clients > 0 {
		logging.Debug().Int("clients", clients).Msg("Seed skipped, clients present")
		return nil
	}

	today := db.now().Truncate(24 * time.Hour)
	for _, tmpl := range seedClients {
		c := tmpl
		if err := db.CreateClient(ctx, &c); err != nil {
			return fmt.Errorf("failed to seed client %s: %w", c.PlotNumber, err)
		}
		if err := db.seedReadings(ctx, c.ID, today); err != nil {
			return err
		}
	}

	logging.Info().
		Int("users", len(seedUsers)).
		Int("clients", len(seedClients)).
		Int("days", SeedDays).
		Msg("Seeded demo data")
	return nil
}

func (db *DB) seedReadings(ctx context.Context, clientID int64, today time.Time) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO utility_readings (client_id, reading_date, water_usage, pac_usage,
			polymer_usage, chlorine_usage, notes, created_at)
		VALUES (?, CAST(? AS DATE), ?, ?, ?, ?, '', ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare seed insert: %w", err)
	}
	defer closeQuietly(stmt)

	for i := 0; i < SeedDays; i++ {
		date := today.AddDate(0, 0, i-(SeedDays-1)).Format(DateLayout)
		water, pac, polymer, chlorine := seedReading(i)
		if _, err := stmt.ExecContext(ctx, clientID, date, water, pac, polymer, chlorine, db.now()); err != nil {
			return fmt.Errorf("failed to seed reading %s: %w", date, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed readings: %w", err)
	}
	return nil
}
