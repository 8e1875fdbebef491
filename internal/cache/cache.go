// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/parkwatch/internal/metrics"
)

// Entry represents a cached item with expiration
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Stats tracks cache performance
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Cache is a thread-safe in-memory cache with TTL expiry.
type Cache struct {
	name string
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]Entry
	stats   Stats

	// loads collapses concurrent GetOrLoad calls for the same key.
	loadMu sync.Mutex
	loads  map[string]*load
}

type load struct {
	done chan struct{}
	val  interface{}
	err  error
}

// New creates a cache. name labels its Prometheus metrics.
func New(name string, ttl time.Duration) *Cache {
	return &Cache{
		name:    name,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]Entry),
		loads:   make(map[string]*load),
	}
}

// Name returns the metrics label of the cache.
func (c *Cache) Name() string {
	return c.name
}

// Get returns the value for key if present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordLookup(false)
		return nil, false
	}
	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if current, ok := c.entries[key]; ok && c.now().After(current.ExpiresAt) {
			delete(c.entries, key)
			c.stats.Evictions++
			c.stats.TotalKeys = int64(len(c.entries))
		}
		c.mu.Unlock()
		c.recordLookup(false)
		return nil, false
	}

	c.recordLookup(true)
	return entry.Data, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom TTL.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry{Data: value, ExpiresAt: c.now().Add(ttl)}
	c.stats.TotalKeys = int64(len(c.entries))
}

// GetOrLoad returns the cached value for key, calling fn to compute and store
// it on a miss. Concurrent misses for the same key share one fn call. Errors
// are not cached.
func (c *Cache) GetOrLoad(key string, fn func() (interface{}, error)) (interface{}, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.loadMu.Lock()
	if l, ok := c.loads[key]; ok {
		c.loadMu.Unlock()
		<-l.done
		return l.val, l.err
	}
	l := &load{done: make(chan struct{})}
	c.loads[key] = l
	c.loadMu.Unlock()

	l.val, l.err = fn()
	if l.err == nil {
		c.Set(key, l.val)
	}

	c.loadMu.Lock()
	delete(c.loads, key)
	c.loadMu.Unlock()
	close(l.done)

	return l.val, l.err
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.stats.Evictions++
		c.stats.TotalKeys = int64(len(c.entries))
	}
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	evicted := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.stats.Evictions += evicted
	c.stats.TotalKeys = 0
	c.mu.Unlock()

	metrics.CacheInvalidations.WithLabelValues(c.name).Inc()
}

// GetStats returns a snapshot of the statistics.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns the hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Cleanup removes expired entries and returns how many were removed.
func (c *Cache) Cleanup() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.stats.Evictions += int64(removed)
	c.stats.TotalKeys = int64(len(c.entries))
	c.stats.LastCleanup = now
	return removed
}

// Serve implements suture.Service, pruning expired entries every TTL.
func (c *Cache) Serve(ctx context.Context) error {
	interval := c.ttl
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Cleanup()
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (c *Cache) String() string {
	return "cache-" + c.name
}

func (c *Cache) recordLookup(hit bool) {
	c.mu.Lock()
	if hit {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.mu.Unlock()
	metrics.RecordCacheLookup(c.name, hit)
}

// GenerateKey creates a compact cache key from a method name and parameters.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
