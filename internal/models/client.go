// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package models

import "time"

// Client is an industrial-park tenant occupying a plot.
type Client struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PlotNumber  string    `json:"plot_number"`
	Industry    string    `json:"industry"`
	Status      Status    `json:"status"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ContactName string    `json:"contact_name"`
	Position    string    `json:"position"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UtilityReading is one day of water and chemical usage for a client.
// Water is in cubic metres, chemicals in kilograms.
type UtilityReading struct {
	ID            int64     `json:"id"`
	ClientID      int64     `json:"client_id"`
	Date          string    `json:"date"` // YYYY-MM-DD
	WaterUsage    float64   `json:"water_usage"`
	PacUsage      float64   `json:"pac_usage"`
	PolymerUsage  float64   `json:"polymer_usage"`
	ChlorineUsage float64   `json:"chlorine_usage"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
