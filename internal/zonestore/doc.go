// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package zonestore persists site zone layouts in BadgerDB.

A layout is the full set of zones drawn over one site's background image,
stored as a single JSON document under the key "layout:<siteID>". Each write
bumps the layout version so clients can tell stale copies apart.

Key Components:

  - Store: Put/Get/List/Delete over a *badger.DB
  - Persister: supervised worker that drains a bounded save queue, wraps each
    write in a gobreaker circuit breaker and publishes the outcome

# Usage

	db, err := zonestore.Open(&cfg.Layouts)
	store := zonestore.NewStore(db)
	persister := zonestore.NewPersister(store, hub, &cfg.Layouts)
	tree.AddDataService(persister)

	version, err := persister.Enqueue(layout)

# Events

The persister publishes "layout_saved" with the stored layout, or
"layout_save_failed" with the site id and error message.

# Thread Safety

Store is safe for concurrent use; Badger transactions provide isolation.
Enqueue may be called from any goroutine.
*/
package zonestore
