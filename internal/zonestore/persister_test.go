// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package zonestore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/parkwatch/internal/config"
	"github.com/tomtom215/parkwatch/internal/models"
)

type publishedEvent struct {
	kind string
	data interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events chan publishedEvent
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{events: make(chan publishedEvent, 32)}
}

func (f *fakePublisher) BroadcastJSON(messageType string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events <- publishedEvent{kind: messageType, data: data}
}

func (f *fakePublisher) next(t *testing.T) publishedEvent {
	t.Helper()
	select {
	case ev := <-f.events:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for published event")
		return publishedEvent{}
	}
}

func testLayoutsConfig() *config.LayoutsConfig {
	return &config.LayoutsConfig{
		InMemory:        true,
		QueueSize:       4,
		SaveTimeout:     time.Second,
		BreakerFailures: 2,
		BreakerTimeout:  time.Minute,
	}
}

func TestPersister_Interface(t *testing.T) {
	t.Parallel()

	var _ suture.Service = (*Persister)(nil)
}

func TestPersister_SavesAndPublishes(t *testing.T) {
	t.Parallel()

	store := NewStore(createTestBadgerDB(t))
	pub := newFakePublisher()
	p := NewPersister(store, pub, testLayoutsConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx) }()

	version, err := p.Enqueue(ctx, *testLayout(4))
	if err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if version != 1 {
		t.Errorf("pending version = %d, want 1", version)
	}

	ev := pub.next(t)
	if ev.kind != EventLayoutSaved {
		t.Fatalf("event = %q, want %q", ev.kind, EventLayoutSaved)
	}
	saved, ok := ev.data.(*models.SiteLayout)
	if !ok || saved.Version != 1 || saved.SiteID != 4 {
		t.Errorf("event data = %#v", ev.data)
	}

	version, err = p.Enqueue(ctx, *testLayout(4))
	if err != nil {
		t.Fatalf("second Enqueue() error = %v", err)
	}
	if version != 2 {
		t.Errorf("second pending version = %d, want 2", version)
	}
	if ev := pub.next(t); ev.kind != EventLayoutSaved {
		t.Errorf("second event = %q", ev.kind)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if _, err := p.Enqueue(context.Background(), *testLayout(4)); !errors.Is(err, ErrPersisterStopped) {
		t.Errorf("Enqueue() after stop error = %v, want ErrPersisterStopped", err)
	}
}

func TestPersister_InvalidLayoutPublishesFailure(t *testing.T) {
	t.Parallel()

	store := NewStore(createTestBadgerDB(t))
	pub := newFakePublisher()
	p := NewPersister(store, pub, testLayoutsConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Serve(ctx) }()

	bad := *testLayout(9)
	bad.ImageWidth = 0
	for i := 0; i < 3; i++ {
		if _, err := p.Enqueue(ctx, bad); err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
		ev := pub.next(t)
		if ev.kind != EventLayoutSaveFailed {
			t.Fatalf("event = %q, want %q", ev.kind, EventLayoutSaveFailed)
		}
		data, ok := ev.data.(SaveFailedData)
		if !ok || data.SiteID != 9 || data.Error == "" {
			t.Errorf("event data = %#v", ev.data)
		}
	}

	if got := p.BreakerState(); got != "closed" {
		t.Errorf("BreakerState() after validation failures = %q, want closed", got)
	}
}

func TestPersister_BreakerOpensOnStoreFailures(t *testing.T) {
	t.Parallel()

	db := createTestBadgerDB(t)
	store := NewStore(db)
	pub := newFakePublisher()
	p := NewPersister(store, pub, testLayoutsConfig())

	// Queue while the store is open, then close it under the worker.
	for i := 0; i < 3; i++ {
		if _, err := p.Enqueue(context.Background(), *testLayout(1)); err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Serve(ctx) }()

	for i := 0; i < 3; i++ {
		if ev := pub.next(t); ev.kind != EventLayoutSaveFailed {
			t.Fatalf("event %d = %q, want failure", i, ev.kind)
		}
	}

	if got := p.BreakerState(); got != "open" {
		t.Errorf("BreakerState() = %q, want open", got)
	}
}

func TestPersister_FailedSaveKeepsLaterVersions(t *testing.T) {
	t.Parallel()

	store := NewStore(createTestBadgerDB(t))
	pub := newFakePublisher()
	p := NewPersister(store, pub, testLayoutsConfig())
	ctx := context.Background()

	bad := *testLayout(4)
	bad.ImageWidth = 0
	v1, err := p.Enqueue(ctx, bad)
	if err != nil {
		t.Fatalf("Enqueue(invalid) error = %v", err)
	}
	v2, err := p.Enqueue(ctx, *testLayout(4))
	if err != nil {
		t.Fatalf("Enqueue(valid) error = %v", err)
	}
	if v1 != 1 || v2 != 2 {
		t.Fatalf("handed out %d and %d, want 1 and 2", v1, v2)
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = p.Serve(serveCtx) }()

	if ev := pub.next(t); ev.kind != EventLayoutSaveFailed {
		t.Fatalf("first event = %q, want %q", ev.kind, EventLayoutSaveFailed)
	}
	ev := pub.next(t)
	saved, ok := ev.data.(*models.SiteLayout)
	if ev.kind != EventLayoutSaved || !ok || saved.Version != v2 {
		t.Fatalf("second event = %q %#v, want layout_saved version %d", ev.kind, ev.data, v2)
	}
	stored, err := store.Get(ctx, 4)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.Version != v2 {
		t.Errorf("stored version = %d, want %d", stored.Version, v2)
	}

	v3, err := p.Enqueue(ctx, *testLayout(4))
	if err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if v3 != 3 {
		t.Errorf("next version = %d, want 3", v3)
	}
	if ev := pub.next(t); ev.kind != EventLayoutSaved {
		t.Errorf("third event = %q", ev.kind)
	}
}

func TestPersister_DeleteWhileQueued(t *testing.T) {
	t.Parallel()

	store := NewStore(createTestBadgerDB(t))
	p := NewPersister(store, nil, testLayoutsConfig())
	ctx := context.Background()

	if err := store.Put(ctx, testLayout(5)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	queued, err := p.Enqueue(ctx, *testLayout(5))
	if err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if err := store.Delete(ctx, 5); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	next, err := p.Enqueue(ctx, *testLayout(5))
	if err != nil {
		t.Fatalf("Enqueue() after delete error = %v", err)
	}
	if queued != 2 || next != 3 {
		t.Fatalf("handed out %d and %d, want 2 and 3", queued, next)
	}

	serveCtx, cancel := context.WithCancel(ctx)
	cancel()
	_ = p.Serve(serveCtx)

	got, err := store.Get(ctx, 5)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Version != next {
		t.Errorf("stored version = %d, want %d", got.Version, next)
	}
}

func TestPersister_QueueFull(t *testing.T) {
	t.Parallel()

	store := NewStore(createTestBadgerDB(t))
	cfg := testLayoutsConfig()
	cfg.QueueSize = 2
	p := NewPersister(store, nil, cfg)
	ctx := context.Background()

	// Serve is not running, so nothing drains the queue.
	for i := 0; i < 2; i++ {
		if _, err := p.Enqueue(ctx, *testLayout(int64(i + 1))); err != nil {
			t.Fatalf("Enqueue(%d) error = %v", i, err)
		}
	}
	if _, err := p.Enqueue(ctx, *testLayout(3)); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Enqueue() error = %v, want ErrQueueFull", err)
	}
	if p.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", p.Pending())
	}
}

func TestPersister_DrainsOnShutdown(t *testing.T) {
	t.Parallel()

	store := NewStore(createTestBadgerDB(t))
	p := NewPersister(store, nil, testLayoutsConfig())

	if _, err := p.Enqueue(context.Background(), *testLayout(2)); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = p.Serve(ctx)

	got, err := store.Get(context.Background(), 2)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Version != 1 {
		t.Errorf("Version = %d, want 1", got.Version)
	}
}
