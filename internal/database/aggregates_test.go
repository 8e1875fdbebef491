// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package database

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/parkwatch/internal/models"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestGetDashboardData_Seeded(t *testing.T) {
	t.Parallel()

	db := seededDB(t)
	data, err := db.GetDashboardData(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardData() error = %v", err)
	}

	// Per client over 30 days: water 7200, PAC 210, polymer 90, chlorine 45.
	clients := float64(len(seedClients))
	s := data.Summary
	if !near(s.TotalWaterUsage, 7200*clients) {
		t.Errorf("TotalWaterUsage = %v, want %v", s.TotalWaterUsage, 7200*clients)
	}
	if !near(s.TotalPacUsage, 210*clients) || !near(s.TotalPolymerUsage, 90*clients) || !near(s.TotalChlorineUsage, 45*clients) {
		t.Errorf("chemical totals = %+v", s)
	}
	if !near(s.AvgPacUsage, 210*clients/SeedDays) {
		t.Errorf("AvgPacUsage = %v, want %v", s.AvgPacUsage, 210*clients/SeedDays)
	}
	if s.WaterChange != 0 {
		t.Errorf("WaterChange = %v, want 0 without an earlier window", s.WaterChange)
	}

	if len(data.WaterUsage.Labels) != SeedDays || len(data.ChemicalUsage.Chlorine) != SeedDays {
		t.Fatalf("series lengths = %d/%d, want %d", len(data.WaterUsage.Labels), len(data.ChemicalUsage.Chlorine), SeedDays)
	}
	// Oldest day first: day 0 water is 150 per client.
	if !near(data.WaterUsage.Data[0], 150*clients) {
		t.Errorf("first water point = %v, want %v", data.WaterUsage.Data[0], 150*clients)
	}

	// Site D is danger, Site B warning; dangers come first.
	if len(data.Alerts) != 2 || data.Alerts[0].Type != models.AlertDanger || data.Alerts[1].Type != models.AlertWarning {
		t.Errorf("Alerts = %+v", data.Alerts)
	}
}

func TestGetDashboardData_Empty(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	data, err := db.GetDashboardData(context.Background())
	if err != nil {
		t.Fatalf("GetDashboardData() error = %v", err)
	}
	if data.Summary.TotalWaterUsage != 0 || len(data.WaterUsage.Data) != 0 || data.Alerts == nil {
		t.Errorf("empty dashboard = %+v", data)
	}
}

func TestGetDashboardData_WaterChange(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	c := &models.Client{Name: "Mill", PlotNumber: "M-1", Status: models.StatusGood}
	if err := db.CreateClient(ctx, c); err != nil {
		t.Fatal(err)
	}

	// 30 older days at 100, then 30 newer days at 150: +50%.
	start, _ := parseDate("2026-01-01")
	for i := 0; i < 2*DashboardWindow; i++ {
		water := 100.0
		if i >= DashboardWindow {
			water = 150
		}
		r := &models.UtilityReading{ClientID: c.ID, Date: start.AddDate(0, 0, i).Format(DateLayout), WaterUsage: water}
		if err := db.InsertReading(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	data, err := db.GetDashboardData(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !near(data.Summary.WaterChange, 50) {
		t.Errorf("WaterChange = %v, want 50", data.Summary.WaterChange)
	}
	if len(data.WaterUsage.Data) != DashboardWindow {
		t.Errorf("chart points = %d, want %d", len(data.WaterUsage.Data), DashboardWindow)
	}
}

func TestGetMapData(t *testing.T) {
	t.Parallel()

	db := seededDB(t)
	ctx := context.Background()

	extra := &models.Client{Name: "Empty plot", PlotNumber: "E-501", Status: "Not Built"}
	if err := db.CreateClient(ctx, extra); err != nil {
		t.Fatal(err)
	}

	data, err := db.GetMapData(ctx)
	if err != nil {
		t.Fatalf("GetMapData() error = %v", err)
	}
	if data.TotalSites != 5 || data.ActiveSites != 4 {
		t.Errorf("sites = %d total, %d active; want 5, 4", data.TotalSites, data.ActiveSites)
	}
	want := models.MapStats{Normal: 2, Warnings: 1, Critical: 1, Unknown: 1}
	if data.Stats != want {
		t.Errorf("Stats = %+v, want %+v", data.Stats, want)
	}

	for _, site := range data.Sites {
		switch site.PlotNumber {
		case "E-501":
			if len(site.UsageHistory) != 0 || site.Color != models.ColorUnknown {
				t.Errorf("empty plot = %+v", site)
			}
		default:
			if len(site.UsageHistory) != MapHistoryDays {
				t.Errorf("%s history = %d points, want %d", site.PlotNumber, len(site.UsageHistory), MapHistoryDays)
				continue
			}
			h := site.UsageHistory
			if h[0].Date >= h[len(h)-1].Date {
				t.Errorf("%s history not ascending: %+v", site.PlotNumber, h)
			}
			if site.Color != site.Status.Color() {
				t.Errorf("%s color = %s", site.PlotNumber, site.Color)
			}
		}
	}
}

func TestGetClientDetail(t *testing.T) {
	t.Parallel()

	db := seededDB(t)
	ctx := context.Background()
	clients, _ := db.ListClients(ctx)
	id := clients[0].ID

	note := &models.UtilityReading{ClientID: id, Date: "2000-01-01", WaterUsage: 0, Notes: "meter replaced"}
	if err := db.InsertReading(ctx, note); err != nil {
		t.Fatal(err)
	}

	detail, err := db.GetClientDetail(ctx, id)
	if err != nil {
		t.Fatalf("GetClientDetail() error = %v", err)
	}
	if detail.Summary.ReadingCount != SeedDays+1 {
		t.Errorf("ReadingCount = %d, want %d", detail.Summary.ReadingCount, SeedDays+1)
	}
	if !near(detail.Summary.WaterAverage, 7200.0/float64(SeedDays+1)) {
		t.Errorf("WaterAverage = %v", detail.Summary.WaterAverage)
	}
	if detail.Summary.FirstReading != "2000-01-01" {
		t.Errorf("FirstReading = %s", detail.Summary.FirstReading)
	}
	if len(detail.WaterUsage.Data) != DetailChartWindow {
		t.Errorf("chart points = %d, want %d", len(detail.WaterUsage.Data), DetailChartWindow)
	}
	if len(detail.TableData) != DetailTableRows {
		t.Errorf("table rows = %d, want %d", len(detail.TableData), DetailTableRows)
	}
	// The noted reading is older than the chart window.
	if len(detail.Notes) != 0 {
		t.Errorf("Notes = %+v, want none within the latest readings", detail.Notes)
	}
	if detail.Documents == nil || detail.Color != models.ColorGood {
		t.Errorf("detail = %+v", detail)
	}

	if _, err := db.GetClientDetail(ctx, 9999); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("GetClientDetail(9999) error = %v", err)
	}
}
