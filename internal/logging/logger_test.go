// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}

	if ValidLevel("bogus") || !ValidLevel("WARN") {
		t.Error("ValidLevel() disagrees with parseLevel")
	}
}

// The tests below swap the global logger and must not run in parallel.

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	WithComponent("hub").Info().Int("clients", 3).Msg("broadcast")

	out := buf.String()
	for _, want := range []string{`"level":"info"`, `"component":"hub"`, `"clients":3`, `"message":"broadcast"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

func TestCtxAddsIDs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	Ctx(ctx).Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-1"`) || !strings.Contains(out, `"correlation_id":"corr-1"`) {
		t.Errorf("output missing ids: %s", out)
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("RequestIDFromContext() on empty context should be empty")
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := NewSlogLogger().With("service", "persister").WithGroup("layout")
	logger.Warn("save failed", "site", 7)
	logger.Debug("dropped")

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"persister"`, `"layout.site":7`, `"message":"save failed"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
	if strings.Contains(out, "dropped") {
		t.Errorf("debug record written below global level: %s", out)
	}
	if NewSlogHandler().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Enabled(debug) = true at info level")
	}
}
