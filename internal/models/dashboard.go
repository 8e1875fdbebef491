// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package models

import "time"

// Alert types, matching the dashboard's banner styles.
const (
	AlertDanger  = "danger"
	AlertWarning = "warning"
	AlertInfo    = "info"
)

// DashboardSummary holds park-wide totals and averages.
// Averages are per reading over the charted window.
type DashboardSummary struct {
	TotalWaterUsage    float64 `json:"total_water_usage"`
	WaterChange        float64 `json:"water_change"` // percent vs previous window
	TotalPacUsage      float64 `json:"total_pac_usage"`
	AvgPacUsage        float64 `json:"avg_pac_usage"`
	TotalPolymerUsage  float64 `json:"total_polymer_usage"`
	AvgPolymerUsage    float64 `json:"avg_polymer_usage"`
	TotalChlorineUsage float64 `json:"total_chlorine_usage"`
	AvgChlorineUsage   float64 `json:"avg_chlorine_usage"`
}

// UsageSeries is a labelled single-value chart series.
type UsageSeries struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// ChemicalSeries is the three-chemical chart series.
type ChemicalSeries struct {
	Labels   []string  `json:"labels"`
	Pac      []float64 `json:"pac"`
	Polymer  []float64 `json:"polymer"`
	Chlorine []float64 `json:"chlorine"`
}

// Append adds one reading's chemical usage under label.
func (s *ChemicalSeries) Append(label string, r UtilityReading) {
	s.Labels = append(s.Labels, label)
	s.Pac = append(s.Pac, r.PacUsage)
	s.Polymer = append(s.Polymer, r.PolymerUsage)
	s.Chlorine = append(s.Chlorine, r.ChlorineUsage)
}

// Alert is a dashboard or client-detail notice.
type Alert struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// DashboardData is the payload of GET /api/dashboard.
type DashboardData struct {
	Summary       DashboardSummary `json:"summary"`
	WaterUsage    UsageSeries      `json:"water_usage"`
	ChemicalUsage ChemicalSeries   `json:"chemical_usage"`
	Alerts        []Alert          `json:"alerts"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

// MapStats counts sites per status.
type MapStats struct {
	Normal   int `json:"normal"`
	Warnings int `json:"warnings"`
	Critical int `json:"critical"`
	Unknown  int `json:"unknown"`
}

// Count adds one site with the given status.
func (s *MapStats) Count(st Status) {
	switch st {
	case StatusGood:
		s.Normal++
	case StatusWarning:
		s.Warnings++
	case StatusDanger:
		s.Critical++
	default:
		s.Unknown++
	}
}

// UsagePoint is one labelled value of a site's usage history.
type UsagePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// MapSite is a client plotted on the site map.
type MapSite struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	PlotNumber   string       `json:"plot_number"`
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	Status       Status       `json:"status"`
	Color        string       `json:"color"`
	UsageHistory []UsagePoint `json:"usage_history"`
}

// MapData is the payload of GET /api/map-data.
type MapData struct {
	TotalSites  int       `json:"total_sites"`
	ActiveSites int       `json:"active_sites"`
	Stats       MapStats  `json:"stats"`
	Sites       []MapSite `json:"sites"`
}

// NearbySite is a site returned by a radius query.
type NearbySite struct {
	MapSite
	DistanceKm float64 `json:"distance_km"`
}

// ClientSummary holds per-client averages over all readings.
type ClientSummary struct {
	WaterAverage    float64 `json:"water_average"`
	ChemicalAverage float64 `json:"chemical_average"`
	ReadingCount    int     `json:"reading_count"`
	FirstReading    string  `json:"first_reading,omitempty"`
	LastReading     string  `json:"last_reading,omitempty"`
}

// ReadingRow is one row of the client detail table.
type ReadingRow struct {
	Date     string  `json:"date"`
	Water    float64 `json:"water"`
	Pac      float64 `json:"pac"`
	Polymer  float64 `json:"polymer"`
	Chlorine float64 `json:"chlorine"`
}

// ClientDocument is an attachment listed on the client detail page.
type ClientDocument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DateAdded   string `json:"date_added"`
	FileSize    string `json:"file_size"`
}

// ClientDetailResponse is the payload of GET /api/clients/{id}.
type ClientDetailResponse struct {
	Client        Client           `json:"client"`
	Color         string           `json:"color"`
	Summary       ClientSummary    `json:"summary"`
	WaterUsage    UsageSeries      `json:"water_usage"`
	ChemicalUsage ChemicalSeries   `json:"chemical_usage"`
	Notes         []Alert          `json:"notes"`
	TableData     []ReadingRow     `json:"table_data"`
	Documents     []ClientDocument `json:"documents"`
}
