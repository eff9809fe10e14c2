// Package geocode wraps the external geocoding provider behind a
// memoized, budgeted lookup for station coordinate resolution.
package geocode

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// Broker coordinates station coordinate resolution:
//
//   - session memo and persistent cache are consulted first (no budget),
//   - then a cascade of external lookups from most to least precise:
//     street address, city+state, city, state centroid,
//   - each external hit is validated against the station's expected state
//     to guard against false matches on ambiguous city names,
//   - the first accepted result is memoized and written through to the
//     persistent cache so later runs need no budget.
//
// A Broker is shared across planning runs and safe for concurrent use.
// Budgets are per run and passed in by the caller.
type Broker struct {
	geocoder ports.Geocoder
	cache    ports.CoordinateCache

	mu   sync.Mutex
	memo map[string]domain.Coordinates
}

// NewBroker wires the external geocoder with an optional persistent cache.
// A nil cache disables write-through; the session memo still applies.
func NewBroker(geocoder ports.Geocoder, cache ports.CoordinateCache) *Broker {
	return &Broker{
		geocoder: geocoder,
		cache:    cache,
		memo:     make(map[string]domain.Coordinates),
	}
}

// Resolve returns the station's coordinates, resolving them if needed.
//
// With allowGeocode false (or a nil/exhausted budget) only the memo and
// the persistent cache are consulted; the station stays unresolved rather
// than erroring, so selection can degrade gracefully.
//
// Resolve never writes to the station record. Station slices are shared
// across concurrent planning runs (and the startup prewarm), so resolved
// coordinates live in the mutex-guarded memo and the persistent cache,
// with Resolve as their single accessor. The Coordinates field is only
// ever populated before the record is shared.
func (b *Broker) Resolve(ctx context.Context, st *domain.Station, budget *Budget, allowGeocode bool) (domain.Coordinates, bool) {
	if st.Coordinates != nil {
		return *st.Coordinates, true
	}

	key := st.Key()

	b.mu.Lock()
	coords, ok := b.memo[key]
	b.mu.Unlock()
	if ok {
		return coords, true
	}

	if b.cache != nil {
		cached, err := b.cache.GetMany(ctx, []string{key})
		if err != nil {
			log.Printf("coordinate cache read failed key=%q err=%v", key, err)
		} else if coords, ok := cached[key]; ok {
			b.remember(key, coords, false)
			return coords, true
		}
	}

	if !allowGeocode || budget == nil {
		return domain.Coordinates{}, false
	}

	for _, query := range resolutionQueries(st) {
		if !budget.Spend() {
			return domain.Coordinates{}, false
		}

		res, found, err := b.geocoder.Geocode(ctx, query)
		if err != nil {
			log.Printf("geocode attempt failed query=%q err=%v", query, err)
			continue
		}
		if !found {
			continue
		}
		// Reject hits the provider places in a different state; the next,
		// coarser tier may still land correctly.
		if res.State != "" && !strings.EqualFold(res.State, st.State) {
			continue
		}

		b.remember(key, res.Coordinates, true)
		return res.Coordinates, true
	}

	return domain.Coordinates{}, false
}

// ReverseCityState resolves a route coordinate to its city and state.
// Marker reverse lookups are bounded by marker count, so they are gated by
// the caller's enable flag rather than the call budget.
func (b *Broker) ReverseCityState(ctx context.Context, coord domain.Coordinates) (ports.Place, bool) {
	place, found, err := b.geocoder.ReverseGeocode(ctx, coord)
	if err != nil {
		log.Printf("reverse geocode failed lat=%.4f lon=%.4f err=%v", coord.Lat, coord.Lon, err)
		return ports.Place{}, false
	}
	return place, found
}

// remember stores a resolution in the session memo and, for fresh external
// hits, writes it through to the persistent cache. Cache write failures
// only cost a re-geocode next run, so they are logged and swallowed.
func (b *Broker) remember(key string, coords domain.Coordinates, persist bool) {
	b.mu.Lock()
	b.memo[key] = coords
	b.mu.Unlock()

	if !persist || b.cache == nil {
		return
	}
	if err := b.cache.PutMany(context.Background(), map[string]domain.Coordinates{key: coords}); err != nil {
		log.Printf("coordinate cache write failed key=%q err=%v", key, err)
	}
}

// resolutionQueries returns the lookup cascade for a station, most precise
// first. Empty components collapse so a station without a street address
// still gets the coarser tiers.
func resolutionQueries(st *domain.Station) []string {
	var queries []string
	add := func(parts ...string) {
		kept := parts[:0]
		for _, p := range parts {
			if strings.TrimSpace(p) != "" {
				kept = append(kept, strings.TrimSpace(p))
			}
		}
		if len(kept) == 0 {
			return
		}
		q := fmt.Sprintf("%s, USA", strings.Join(kept, ", "))
		for _, seen := range queries {
			if seen == q {
				return
			}
		}
		queries = append(queries, q)
	}

	add(st.Address, st.City, st.State)
	add(st.City, st.State)
	add(st.City)
	add(st.State)
	return queries
}
