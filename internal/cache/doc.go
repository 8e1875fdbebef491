// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

/*
Package cache provides the in-memory caches behind the dashboard and map APIs.

Key Components:

  - Cache: thread-safe TTL cache for computed API responses, with hit/miss
    statistics exported to Prometheus under its name
  - SiteIndex: spatial hash grid of site coordinates for radius queries
    ("which plots are within 2 km of this point")

# Invalidation

Submitting a reading changes every aggregate, so the API clears both the
dashboard and map caches and rebuilds the SiteIndex on the next map request.

# Usage

	dashboard := cache.New("dashboard", 30*time.Second)
	v, err := dashboard.GetOrLoad("summary", func() (interface{}, error) {
	    return db.GetDashboardData(ctx)
	})

	idx := cache.NewSiteIndex(1.0)
	idx.Rebuild(mapData.Sites)
	nearby := idx.Nearby(13.75, 100.50, 5)

# Thread Safety

All types are safe for concurrent use.
*/
package cache
