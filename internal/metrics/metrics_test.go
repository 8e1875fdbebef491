// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test/metrics", "200"))
	RecordAPIRequest("GET", "/test/metrics", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/test/metrics", "200"))

	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantDelta float64
	}{
		{"success", nil, 0},
		{"failure", errors.New("connection refused"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := DBQueryErrors.WithLabelValues("select", "test_"+tt.name)
			before := testutil.ToFloat64(counter)
			RecordDBQuery("select", "test_"+tt.name, time.Millisecond, tt.err)
			if got := testutil.ToFloat64(counter) - before; got != tt.wantDelta {
				t.Errorf("error delta = %v, want %v", got, tt.wantDelta)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordEditorCommand(t *testing.T) {
	ok := EditorCommands.WithLabelValues("test_cmd", "ok")
	rejected := EditorCommands.WithLabelValues("test_cmd", "rejected")
	okBefore, rejBefore := testutil.ToFloat64(ok), testutil.ToFloat64(rejected)

	RecordEditorCommand("test_cmd", nil)
	RecordEditorCommand("test_cmd", errors.New("bad"))
	RecordEditorCommand("test_cmd", errors.New("bad"))

	if got := testutil.ToFloat64(ok) - okBefore; got != 1 {
		t.Errorf("ok delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rejected) - rejBefore; got != 2 {
		t.Errorf("rejected delta = %v, want 2", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := CacheHits.WithLabelValues("test_cache")
	misses := CacheMisses.WithLabelValues("test_cache")
	hitsBefore, missesBefore := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheLookup("test_cache", true)
	RecordCacheLookup("test_cache", false)
	RecordCacheLookup("test_cache", false)

	if got := testutil.ToFloat64(hits) - hitsBefore; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(misses) - missesBefore; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordLayoutSave(t *testing.T) {
	counter := LayoutSaves.WithLabelValues("test_result")
	before := testutil.ToFloat64(counter)
	RecordLayoutSave("test_result", 0)
	RecordLayoutSave("test_result", 3*time.Millisecond)
	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("saves delta = %v, want 2", got)
	}
}
