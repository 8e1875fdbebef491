// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/parkwatch/internal/config"
	"github.com/tomtom215/parkwatch/internal/geometry"
	"github.com/tomtom215/parkwatch/internal/logging"
	"github.com/tomtom215/parkwatch/internal/metrics"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("editor session not found")

	// ErrTooManySessions is returned by Create when MaxSessions are open.
	ErrTooManySessions = errors.New("too many open editor sessions")
)

// Manager owns every open editor session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl      time.Duration
	interval time.Duration
	max      int
	now      func() time.Time
	opts     []geometry.EditorOption
}

// NewManager creates a session manager. opts are applied to every new editor.
func NewManager(cfg *config.EditorConfig, opts ...geometry.EditorOption) *Manager {
	interval := cfg.ReapInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      cfg.SessionTTL,
		interval: interval,
		max:      cfg.MaxSessions,
		now:      time.Now,
		opts:     opts,
	}
}

// Create opens a session for siteID. An invalid space falls back to the
// default canvas; an invalid container maps one pixel to one logical unit.
func (m *Manager) Create(siteID int64, space geometry.Space, container geometry.Size, user string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.max > 0 && len(m.sessions) >= m.max {
		return nil, ErrTooManySessions
	}

	s := newSession(uuid.NewString(), siteID, space, container, user, m.now, m.opts...)
	m.sessions[s.id] = s
	metrics.EditorSessionsActive.Set(float64(len(m.sessions)))

	logging.Info().Str("session_id", s.id).Int64("site_id", siteID).Str("user", user).Msg("Editor session opened")
	return s, nil
}

// Get returns an open session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close discards a session without saving.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	metrics.EditorSessionsActive.Set(float64(len(m.sessions)))
	logging.Info().Str("session_id", id).Msg("Editor session closed")
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Reap closes sessions idle for longer than the TTL and returns how many
// were closed. A zero TTL disables reaping.
func (m *Manager) Reap(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	reaped := 0
	for id, s := range m.sessions {
		if now.Sub(s.LastUsed()) > m.ttl {
			delete(m.sessions, id)
			reaped++
			logging.Info().Str("session_id", id).Int64("site_id", s.siteID).Msg("Editor session expired")
		}
	}
	if reaped > 0 {
		metrics.EditorSessionsReaped.Add(float64(reaped))
		metrics.EditorSessionsActive.Set(float64(len(m.sessions)))
	}
	return reaped
}

// Serve implements suture.Service by reaping idle sessions on an interval.
func (m *Manager) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Reap(m.now())
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (m *Manager) String() string {
	return "editor-session-reaper"
}
