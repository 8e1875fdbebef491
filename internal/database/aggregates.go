// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/parkwatch/internal/models"
)

// Window sizes of the dashboard, map and client detail views.
const (
	DashboardWindow   = 30 // reading dates charted on the dashboard
	MapHistoryDays    = 7  // water readings per site on the map
	DetailChartWindow = 30
	DetailTableRows   = 7
	detailNoteLimit   = 5
)

// dailyTotal is the park-wide usage of one date.
type dailyTotal struct {
	date     string
	water    float64
	pac      float64
	polymer  float64
	chlorine float64
}

// GetDashboardData builds the park-wide dashboard. Totals cover every
// reading; averages and charts cover the latest DashboardWindow reading dates,
// each date summed over all clients. WaterChange compares that window with the
// one before it and is 0 when there is no earlier data.
func (db *DB) GetDashboardData(ctx context.Context) (_ *models.DashboardData, err error) {
	defer observe("select", "dashboard", time.Now(), &err)

	data := &models.DashboardData{
		WaterUsage:    models.UsageSeries{Labels: []string{}, Data: []float64{}},
		ChemicalUsage: models.ChemicalSeries{Labels: []string{}, Pac: []float64{}, Polymer: []float64{}, Chlorine: []float64{}},
		Alerts:        []models.Alert{},
		GeneratedAt:   db.now(),
	}

	s := &data.Summary
	err = db.conn.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(water_usage), 0), COALESCE(SUM(pac_usage), 0),
		       COALESCE(SUM(polymer_usage), 0), COALESCE(SUM(chlorine_usage), 0)
		FROM utility_readings`,
	).Scan(&s.TotalWaterUsage, &s.TotalPacUsage, &s.TotalPolymerUsage, &s.TotalChlorineUsage)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage totals: %w", err)
	}

	days, err := db.dailyTotals(ctx, 2*DashboardWindow)
	if err != nil {
		return nil, err
	}
	current := days
	var previous []dailyTotal
	if len(days) > DashboardWindow {
		current, previous = days[:DashboardWindow], days[DashboardWindow:]
	}

	var water float64
	for _, d := range reverse(current) {
		label := chartLabel(d.date)
		data.WaterUsage.Labels = append(data.WaterUsage.Labels, label)
		data.WaterUsage.Data = append(data.WaterUsage.Data, d.water)
		data.ChemicalUsage.Append(label, models.UtilityReading{
			PacUsage: d.pac, PolymerUsage: d.polymer, ChlorineUsage: d.chlorine,
		})
		water += d.water
		s.AvgPacUsage += d.pac
		s.AvgPolymerUsage += d.polymer
		s.AvgChlorineUsage += d.chlorine
	}
	if n := float64(len(current)); n > 0 {
		s.AvgPacUsage /= n
		s.AvgPolymerUsage /= n
		s.AvgChlorineUsage /= n
	}

	var prevWater float64
	for _, d := range previous {
		prevWater += d.water
	}
	if prevWater > 0 {
		s.WaterChange = (water - prevWater) / prevWater * 100
	}

	alerts, err := db.statusAlerts(ctx)
	if err != nil {
		return nil, err
	}
	data.Alerts = alerts
	return data, nil
}

// dailyTotals returns per-date sums for the latest limit dates, newest first.
func (db *DB) dailyTotals(ctx context.Context, limit int) ([]dailyTotal, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT reading_date, SUM(water_usage), SUM(pac_usage), SUM(polymer_usage), SUM(chlorine_usage)
		FROM utility_readings
		GROUP BY reading_date
		ORDER BY reading_date DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer closeQuietly(rows)

	var out []dailyTotal
	for rows.Next() {
		var d dailyTotal
		var date time.Time
		if err := rows.Scan(&date, &d.water, &d.pac, &d.polymer, &d.chlorine); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		d.date = date.Format(DateLayout)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily totals: %w", err)
	}
	return out, nil
}

// statusAlerts raises one alert per client in danger or warning state,
// dangers first.
func (db *DB) statusAlerts(ctx context.Context) ([]models.Alert, error) {
	clients, err := db.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	today := db.now().Format(DateLayout)

	alerts := []models.Alert{}
	for _, want := range []models.Status{models.StatusDanger, models.StatusWarning} {
		for _, c := range clients {
			if c.Status != want {
				continue
			}
			a := models.Alert{Type: models.AlertWarning, Date: today,
				Title:   "Attention: " + c.Name,
				Message: fmt.Sprintf("Plot %s is under construction or needs review", c.PlotNumber)}
			if want == models.StatusDanger {
				a.Type = models.AlertDanger
				a.Title = "Critical: " + c.Name
				a.Message = fmt.Sprintf("Plot %s requires immediate attention", c.PlotNumber)
			}
			alerts = append(alerts, a)
		}
	}
	return alerts, nil
}

// GetMapData returns every site with its status color and its last
// MapHistoryDays water readings in ascending date order. Sites whose status
// is unknown are not counted as active.
func (db *DB) GetMapData(ctx context.Context) (_ *models.MapData, err error) {
	defer observe("select", "map", time.Now(), &err)

	clients, err := db.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	history, err := db.recentWater(ctx, MapHistoryDays)
	if err != nil {
		return nil, err
	}

	data := &models.MapData{TotalSites: len(clients), Sites: make([]models.MapSite, 0, len(clients))}
	for _, c := range clients {
		data.Stats.Count(c.Status)
		if c.Status != models.StatusUnknown {
			data.ActiveSites++
		}
		usage := history[c.ID]
		if usage == nil {
			usage = []models.UsagePoint{}
		}
		data.Sites = append(data.Sites, models.MapSite{
			ID:           c.ID,
			Name:         c.Name,
			PlotNumber:   c.PlotNumber,
			Latitude:     c.Latitude,
			Longitude:    c.Longitude,
			Status:       c.Status,
			Color:        c.Status.Color(),
			UsageHistory: usage,
		})
	}
	return data, nil
}

// recentWater returns each client's latest n water readings, oldest first.
func (db *DB) recentWater(ctx context.Context, n int) (map[int64][]models.UsagePoint, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT client_id, reading_date, water_usage FROM (
			SELECT client_id, reading_date, water_usage,
			       row_number() OVER (PARTITION BY client_id ORDER BY reading_date DESC, id DESC) AS rn
			FROM utility_readings
		) WHERE rn <= ?
		ORDER BY client_id, reading_date`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query water history: %w", err)
	}
	defer closeQuietly(rows)

	out := make(map[int64][]models.UsagePoint)
	for rows.Next() {
		var id int64
		var date time.Time
		var water float64
		if err := rows.Scan(&id, &date, &water); err != nil {
			return nil, fmt.Errorf("failed to scan water history: %w", err)
		}
		out[id] = append(out[id], models.UsagePoint{Date: date.Format(DateLayout), Value: water})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate water history: %w", err)
	}
	return out, nil
}

// GetClientDetail builds the client report: averages over all readings,
// charts of the last DetailChartWindow readings, a table of the last
// DetailTableRows readings newest first, and notes taken from readings.
func (db *DB) GetClientDetail(ctx context.Context, id int64) (_ *models.ClientDetailResponse, err error) {
	defer observe("select", "client_detail", time.Now(), &err)

	client, err := db.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &models.ClientDetailResponse{
		Client:        *client,
		Color:         client.Status.Color(),
		WaterUsage:    models.UsageSeries{Labels: []string{}, Data: []float64{}},
		ChemicalUsage: models.ChemicalSeries{Labels: []string{}, Pac: []float64{}, Polymer: []float64{}, Chlorine: []float64{}},
		Notes:         []models.Alert{},
		TableData:     []models.ReadingRow{},
		Documents:     []models.ClientDocument{},
	}

	var first, last sql.NullTime
	sum := &resp.Summary
	err = db.conn.QueryRowContext(ctx, `
		SELECT COALESCE(AVG(water_usage), 0),
		       COALESCE(AVG(pac_usage + polymer_usage + chlorine_usage), 0),
		       COUNT(*), MIN(reading_date), MAX(reading_date)
		FROM utility_readings WHERE client_id = ?`, id,
	).Scan(&sum.WaterAverage, &sum.ChemicalAverage, &sum.ReadingCount, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("failed to query client summary: %w", err)
	}
	if first.Valid {
		sum.FirstReading = first.Time.Format(DateLayout)
	}
	if last.Valid {
		sum.LastReading = last.Time.Format(DateLayout)
	}

	readings, err := db.ListReadings(ctx, id, DetailChartWindow)
	if err != nil {
		return nil, err
	}

	for _, r := range reverse(readings) {
		label := chartLabel(r.Date)
		resp.WaterUsage.Labels = append(resp.WaterUsage.Labels, label)
		resp.WaterUsage.Data = append(resp.WaterUsage.Data, r.WaterUsage)
		resp.ChemicalUsage.Append(label, r)
	}

	for i, r := range readings {
		if i < DetailTableRows {
			resp.TableData = append(resp.TableData, models.ReadingRow{
				Date:     tableDate(r.Date),
				Water:    r.WaterUsage,
				Pac:      r.PacUsage,
				Polymer:  r.PolymerUsage,
				Chlorine: r.ChlorineUsage,
			})
		}
		if r.Notes != "" && len(resp.Notes) < detailNoteLimit {
			resp.Notes = append(resp.Notes, models.Alert{
				Type:    models.AlertInfo,
				Title:   "Operator note",
				Message: r.Notes,
				Date:    r.Date,
			})
		}
	}
	return resp, nil
}

func tableDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(tableDateLayout)
}
