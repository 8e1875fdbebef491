// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package zonestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/parkwatch/internal/config"
	"github.com/tomtom215/parkwatch/internal/models"
	"github.com/tomtom215/parkwatch/internal/validation"
)

const layoutKeyPrefix = "layout:"

var (
	// ErrLayoutNotFound is returned when no layout is stored for a site.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrInvalidLayout wraps validation failures on Put.
	ErrInvalidLayout = errors.New("invalid layout")

	// ErrVersionConflict is returned by Put when the requested version is not
	// above the stored one.
	ErrVersionConflict = errors.New("layout version conflict")
)

// Open opens the Badger database described by cfg.
func Open(cfg *config.LayoutsConfig) (*badger.DB, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout store: %w", err)
	}
	return db, nil
}

// Store reads and writes site layouts.
type Store struct {
	db  *badger.DB
	now func() time.Time
}

// NewStore wraps an open Badger database.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func layoutKey(siteID int64) []byte {
	return []byte(layoutKeyPrefix + strconv.FormatInt(siteID, 10))
}

// Put validates and stores layout, replacing any previous version.
//
// A non-zero layout.Version is stored as given and must be above the stored
// version. Zero stores the next version after the stored one. On success
// layout.Version and SavedAt hold what was written.
func (s *Store) Put(ctx context.Context, layout *models.SiteLayout) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if verr := validation.ValidateStruct(layout); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidLayout, verr.Error())
	}

	key := layoutKey(layout.SiteID)
	return s.db.Update(func(txn *badger.Txn) error {
		var version int64
		item, err := txn.Get(key)
		switch {
		case err == nil:
			var existing models.SiteLayout
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			}); err != nil {
				return fmt.Errorf("failed to read layout: %w", err)
			}
			version = existing.Version
		case !errors.Is(err, badger.ErrKeyNotFound):
			return fmt.Errorf("failed to read layout: %w", err)
		}

		stored := *layout
		switch {
		case layout.Version == 0:
			stored.Version = version + 1
		case layout.Version <= version:
			return fmt.Errorf("%w: site %d has version %d, got %d", ErrVersionConflict, layout.SiteID, version, layout.Version)
		}
		stored.SavedAt = s.now().UTC()
		data, err := json.Marshal(&stored)
		if err != nil {
			return fmt.Errorf("failed to marshal layout: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("failed to write layout: %w", err)
		}
		layout.Version = stored.Version
		layout.SavedAt = stored.SavedAt
		return nil
	})
}

// Get returns the stored layout for siteID.
func (s *Store) Get(ctx context.Context, siteID int64) (*models.SiteLayout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var layout models.SiteLayout
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(layoutKey(siteID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrLayoutNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &layout)
		})
	})
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

// List returns every stored layout ordered by site id.
func (s *Store) List(ctx context.Context) ([]*models.SiteLayout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	layouts := make([]*models.SiteLayout, 0)
	prefix := []byte(layoutKeyPrefix)
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var layout models.SiteLayout
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &layout)
			}); err != nil {
				return fmt.Errorf("failed to decode %s: %w", it.Item().Key(), err)
			}
			layouts = append(layouts, &layout)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Keys sort lexically, so "layout:10" precedes "layout:2".
	sort.Slice(layouts, func(i, j int) bool { return layouts[i].SiteID < layouts[j].SiteID })
	return layouts, nil
}

// Delete removes the layout for siteID.
func (s *Store) Delete(ctx context.Context, siteID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := layoutKey(siteID)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrLayoutNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}
