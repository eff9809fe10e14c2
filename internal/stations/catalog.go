package stations

import (
	"math"
	"slices"
	"strings"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
)

// Catalog holds the deduplicated station records for one process lifetime
// (or one request, when bbox-filtered) and answers the two-tier candidate
// lookup: exact city+state first, state-only as fallback. The narrowing
// exists because the price dataset is sparse per city but dense per state,
// and geocoding every station nationwide is cost-prohibitive.
type Catalog struct {
	stations    []*domain.Station
	byPrice     []*domain.Station
	byCityState map[string][]*domain.Station
	byState     map[string][]*domain.Station
}

func NewCatalog(sts []*domain.Station) *Catalog {
	c := &Catalog{
		stations:    sts,
		byCityState: make(map[string][]*domain.Station),
		byState:     make(map[string][]*domain.Station),
	}
	for _, st := range sts {
		cs := cityStateKey(st.City, st.State)
		c.byCityState[cs] = append(c.byCityState[cs], st)
		sk := stateKey(st.State)
		c.byState[sk] = append(c.byState[sk], st)
	}

	c.byPrice = SortedByPrice(sts)
	return c
}

func cityStateKey(city, state string) string {
	return strings.ToLower(strings.TrimSpace(city)) + "|" + strings.ToLower(strings.TrimSpace(state))
}

func stateKey(state string) string {
	return strings.ToLower(strings.TrimSpace(state))
}

// SortedByPrice returns a price-ascending copy. The sort is stable so that
// equal-price stations keep dataset order, which keeps selection
// deterministic.
func SortedByPrice(sts []*domain.Station) []*domain.Station {
	out := make([]*domain.Station, len(sts))
	copy(out, sts)
	slices.SortStableFunc(out, func(a, b *domain.Station) int {
		switch {
		case a.PricePerGallon < b.PricePerGallon:
			return -1
		case a.PricePerGallon > b.PricePerGallon:
			return 1
		default:
			return 0
		}
	})
	return out
}

// Len reports the number of stations in the catalog.
func (c *Catalog) Len() int { return len(c.stations) }

// All returns every station in dataset order.
func (c *Catalog) All() []*domain.Station { return c.stations }

// ByPrice returns every station, cheapest first.
func (c *Catalog) ByPrice() []*domain.Station { return c.byPrice }

// Candidates returns stations matching city+state exactly, falling back to
// the whole state when the city has none. Empty city or state yields nil.
func (c *Catalog) Candidates(city, state string) []*domain.Station {
	if strings.TrimSpace(city) == "" || strings.TrimSpace(state) == "" {
		return nil
	}
	if sts := c.byCityState[cityStateKey(city, state)]; len(sts) > 0 {
		return sts
	}
	return c.ForState(state)
}

// ForState returns every station in the given state.
func (c *Catalog) ForState(state string) []*domain.Station {
	if strings.TrimSpace(state) == "" {
		return nil
	}
	return c.byState[stateKey(state)]
}

// FilterByRouteBounds drops stations with known coordinates that lie
// outside the route's bounding box plus a margin. Unresolved stations are
// kept: they may geocode into range later. Cuts the per-marker scan down
// for cross-country datasets.
func FilterByRouteBounds(sts []*domain.Station, points []domain.Coordinates, marginMiles float64) []*domain.Station {
	if len(points) == 0 {
		return sts
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon
	for _, p := range points[1:] {
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLon = math.Min(minLon, p.Lon)
		maxLon = math.Max(maxLon, p.Lon)
	}

	midLat := (minLat + maxLat) / 2
	latMargin := marginMiles / geo.MilesPerDegreeLat
	lonMargin := marginMiles / (geo.MilesPerDegreeLat * math.Max(math.Cos(midLat*math.Pi/180), 0.1))

	loLat, hiLat := minLat-latMargin, maxLat+latMargin
	loLon, hiLon := minLon-lonMargin, maxLon+lonMargin

	out := make([]*domain.Station, 0, len(sts))
	for _, st := range sts {
		if st.Coordinates == nil {
			out = append(out, st)
			continue
		}
		if st.Coordinates.Lat >= loLat && st.Coordinates.Lat <= hiLat &&
			st.Coordinates.Lon >= loLon && st.Coordinates.Lon <= hiLon {
			out = append(out, st)
		}
	}
	return out
}
