// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package cache

import (
	"math"
	"sort"
	"sync"

	"github.com/tomtom215/parkwatch/internal/models"
)

const kmPerDegree = 111.0

// cellKey is a grid cell coordinate.
type cellKey struct {
	X, Y int
}

// SiteIndex is a spatial hash grid over site coordinates. A radius query only
// visits the cells overlapping the search circle.
type SiteIndex struct {
	mu       sync.RWMutex
	cellSize float64 // degrees
	cells    map[cellKey][]models.MapSite
	size     int
	built    bool
}

// NewSiteIndex creates an empty index with cells roughly cellSizeKm wide.
func NewSiteIndex(cellSizeKm float64) *SiteIndex {
	if cellSizeKm <= 0 {
		cellSizeKm = 1
	}
	return &SiteIndex{
		cellSize: cellSizeKm / kmPerDegree,
		cells:    make(map[cellKey][]models.MapSite),
	}
}

func (x *SiteIndex) key(lat, lon float64) cellKey {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return cellKey{
		X: int(math.Floor(lon / x.cellSize)),
		Y: int(math.Floor(lat / x.cellSize)),
	}
}

// Rebuild replaces the indexed sites.
func (x *SiteIndex) Rebuild(sites []models.MapSite) {
	cells := make(map[cellKey][]models.MapSite)
	for _, s := range sites {
		k := x.key(s.Latitude, s.Longitude)
		cells[k] = append(cells[k], s)
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.cells = cells
	x.size = len(sites)
	x.built = true
}

// Invalidate marks the index stale so the next caller rebuilds it.
func (x *SiteIndex) Invalidate() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.built = false
}

// Built reports whether the index holds current data.
func (x *SiteIndex) Built() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.built
}

// Size returns the number of indexed sites.
func (x *SiteIndex) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.size
}

// Nearby returns the sites within radiusKm of (lat, lon), nearest first.
func (x *SiteIndex) Nearby(lat, lon, radiusKm float64) []models.NearbySite {
	x.mu.RLock()
	defer x.mu.RUnlock()

	results := make([]models.NearbySite, 0)
	if radiusKm < 0 {
		return results
	}

	reach := int(math.Ceil(radiusKm/kmPerDegree/x.cellSize)) + 1
	center := x.key(lat, lon)
	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			for _, s := range x.cells[cellKey{X: center.X + dx, Y: center.Y + dy}] {
				if d := HaversineKm(lat, lon, s.Latitude, s.Longitude); d <= radiusKm {
					results = append(results, models.NearbySite{MapSite: s, DistanceKm: d})
				}
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceKm == results[j].DistanceKm {
			return results[i].ID < results[j].ID
		}
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results
}

// HaversineKm is the great-circle distance between two points in kilometres.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
