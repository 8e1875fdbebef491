// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package models

import "strings"

// Status is the operating condition of a site or zone.
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
	StatusUnknown Status = "unknown"
)

// Status fill colors used by the map and the zone renderer.
const (
	ColorGood    = "#10B981"
	ColorWarning = "#F59E0B"
	ColorDanger  = "#EF4444"
	ColorUnknown = "#9CA3AF"
)

// legacyStatus maps the plot-sales vocabulary onto canonical statuses.
var legacyStatus = map[string]Status{
	"operating":          StatusGood,
	"under construction": StatusWarning,
	"not sold":           StatusDanger,
	"not built":          StatusUnknown,
}

// ParseStatus accepts either the short codes (good, warning, danger, unknown)
// or the legacy labels (Operating, Under Construction, Not Sold, Not Built),
// case-insensitively. Anything else is StatusUnknown.
func ParseStatus(s string) Status {
	key := strings.ToLower(strings.TrimSpace(s))
	switch Status(key) {
	case StatusGood, StatusWarning, StatusDanger, StatusUnknown:
		return Status(key)
	}
	if st, ok := legacyStatus[key]; ok {
		return st
	}
	return StatusUnknown
}

// Valid reports whether s is one of the canonical statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusGood, StatusWarning, StatusDanger, StatusUnknown:
		return true
	}
	return false
}

// Color returns the fill color for the status.
func (s Status) Color() string {
	switch s {
	case StatusGood:
		return ColorGood
	case StatusWarning:
		return ColorWarning
	case StatusDanger:
		return ColorDanger
	}
	return ColorUnknown
}

// Persistable returns the status as stored in layout documents, which only
// know good, warning and danger. Unknown is stored as good.
func (s Status) Persistable() Status {
	switch s {
	case StatusWarning, StatusDanger:
		return s
	}
	return StatusGood
}
