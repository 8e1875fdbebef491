// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package zonestore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/parkwatch/internal/config"
	"github.com/tomtom215/parkwatch/internal/logging"
	"github.com/tomtom215/parkwatch/internal/metrics"
	"github.com/tomtom215/parkwatch/internal/models"
)

// Event types published after each save attempt.
const (
	EventLayoutSaved      = "layout_saved"
	EventLayoutSaveFailed = "layout_save_failed"
)

const breakerName = "layout-store"

var (
	// ErrQueueFull is returned by Enqueue when the save queue is saturated.
	ErrQueueFull = errors.New("layout save queue is full")

	// ErrPersisterStopped is returned by Enqueue after Serve has returned.
	ErrPersisterStopped = errors.New("layout persister is stopped")
)

// Publisher receives save outcomes. Satisfied by *websocket.Hub.
type Publisher interface {
	BroadcastJSON(messageType string, data interface{})
}

// SaveFailedData is the payload of a layout_save_failed event.
type SaveFailedData struct {
	SiteID  int64  `json:"site_id"`
	Version int64  `json:"version"`
	Error   string `json:"error"`
}

// Persister writes enqueued layouts on a single worker goroutine.
type Persister struct {
	store   *Store
	pub     Publisher
	queue   chan models.SiteLayout
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[*models.SiteLayout]

	mu       sync.Mutex
	versions map[int64]int64 // last version handed out per site
	stopped  bool
}

// NewPersister creates a persister. pub may be nil.
func NewPersister(store *Store, pub Publisher, cfg *config.LayoutsConfig) *Persister {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 1
	}
	timeout := cfg.SaveTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[*models.SiteLayout](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= failures
			if trip {
				logging.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening layout store circuit")
			}
			return trip
		},
		// Rejected documents are the caller's fault, not the store's.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrInvalidLayout) || errors.Is(err, ErrVersionConflict)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})

	return &Persister{
		store:    store,
		pub:      pub,
		queue:    make(chan models.SiteLayout, queueSize),
		timeout:  timeout,
		cb:       cb,
		versions: make(map[int64]int64),
	}
}

// Enqueue schedules layout for writing and returns the version it will be
// stored under if the write succeeds. It never blocks on the write, but reads
// the stored version so saves written outside the persister are not reused.
func (p *Persister) Enqueue(ctx context.Context, layout models.SiteLayout) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return 0, ErrPersisterStopped
	}

	// Handed-out versions only grow. A failed or deleted save leaves a gap
	// rather than a number a later queued save already holds.
	current := p.versions[layout.SiteID]
	stored, err := p.store.Get(ctx, layout.SiteID)
	switch {
	case err == nil:
		current = max(current, stored.Version)
	case !errors.Is(err, ErrLayoutNotFound):
		return 0, fmt.Errorf("failed to read current layout version: %w", err)
	}

	layout.Version = current + 1
	select {
	case p.queue <- layout:
	default:
		metrics.RecordLayoutSave("dropped", 0)
		return 0, ErrQueueFull
	}
	p.versions[layout.SiteID] = layout.Version
	metrics.LayoutQueueDepth.Set(float64(len(p.queue)))
	return layout.Version, nil
}

// Pending returns the number of queued saves.
func (p *Persister) Pending() int {
	return len(p.queue)
}

// Serve implements suture.Service. It drains the queue until ctx is
// canceled, then writes whatever is still queued before returning.
func (p *Persister) Serve(ctx context.Context) error {
	p.mu.Lock()
	p.stopped = false
	p.mu.Unlock()

	logging.Info().Str("component", "layout-persister").Msg("Layout persister started")
	for {
		select {
		case <-ctx.Done():
			p.drain()
			return ctx.Err()
		case layout := <-p.queue:
			p.save(context.Background(), layout)
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (p *Persister) String() string {
	return "layout-persister"
}

func (p *Persister) drain() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	for {
		select {
		case layout := <-p.queue:
			p.save(context.Background(), layout)
		default:
			logging.Info().Str("component", "layout-persister").Msg("Layout persister stopped")
			return
		}
	}
}

func (p *Persister) save(parent context.Context, layout models.SiteLayout) {
	metrics.LayoutQueueDepth.Set(float64(len(p.queue)))
	ctx, cancel := context.WithTimeout(parent, p.timeout)
	defer cancel()

	pendingVersion := layout.Version
	start := time.Now()
	saved, err := p.cb.Execute(func() (*models.SiteLayout, error) {
		if err := p.store.Put(ctx, &layout); err != nil {
			return nil, err
		}
		return &layout, nil
	})
	elapsed := time.Since(start)

	if err != nil {
		p.fail(layout, pendingVersion, err, elapsed)
		return
	}

	p.mu.Lock()
	if saved.Version > p.versions[saved.SiteID] {
		p.versions[saved.SiteID] = saved.Version
	}
	p.mu.Unlock()

	metrics.RecordLayoutSave("success", elapsed)
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	logging.Info().Int64("site_id", saved.SiteID).Int64("version", saved.Version).Int("zones", len(saved.Zones)).Msg("Layout saved")
	p.publish(EventLayoutSaved, saved)
}

func (p *Persister) fail(layout models.SiteLayout, version int64, err error, elapsed time.Duration) {
	result := "failure"
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		result = "rejected"
	}
	metrics.RecordLayoutSave(result, elapsed)
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, result).Inc()

	logging.Error().Err(err).Int64("site_id", layout.SiteID).Int64("version", version).Str("result", result).Msg("Layout save failed")
	p.publish(EventLayoutSaveFailed, SaveFailedData{
		SiteID:  layout.SiteID,
		Version: version,
		Error:   err.Error(),
	})
}

func (p *Persister) publish(eventType string, data interface{}) {
	if p.pub == nil {
		return
	}
	p.pub.BroadcastJSON(eventType, data)
}

// BreakerState returns the circuit breaker state name.
func (p *Persister) BreakerState() string {
	return stateToString(p.cb.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
