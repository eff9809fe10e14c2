package services

import (
	"context"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
	"fuel-route-service/internal/geocode"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/stations"
)

// SelectParams controls stop selection for one planning run.
type SelectParams struct {
	RadiusMiles           float64
	AllowStationGeocoding bool
	UseReverseGeocoding   bool
}

// SelectStops evaluates every marker in order and returns exactly one
// decision per marker. Budget state carries across markers: what marker N
// spends is gone for marker N+1, so markers are processed sequentially.
//
// Real fuel-price datasets have incomplete geocoding and sparse regional
// coverage, so selection runs through an ordered list of fallback tiers,
// degrading precision before failing outright. Only an entirely empty
// catalog yields a stationless decision.
func SelectStops(
	ctx context.Context,
	markers []domain.Marker,
	catalog *stations.Catalog,
	broker *geocode.Broker,
	budget *geocode.Budget,
	p SelectParams,
) []domain.StopDecision {
	decisions := make([]domain.StopDecision, 0, len(markers))
	for _, m := range markers {
		decisions = append(decisions, selectOne(ctx, m, catalog, broker, budget, p))
	}
	return decisions
}

func selectOne(
	ctx context.Context,
	m domain.Marker,
	catalog *stations.Catalog,
	broker *geocode.Broker,
	budget *geocode.Budget,
	p SelectParams,
) domain.StopDecision {
	if catalog.Len() == 0 {
		return domain.StopDecision{
			Marker: m,
			Point:  m.Point,
			Tier:   domain.TierNone,
			Note:   "no stations in catalog",
		}
	}

	place := markerPlace(ctx, m, catalog, broker, p)

	// Tried in order; the first tier that produces a station wins.
	tiers := []func() (domain.StopDecision, bool){
		func() (domain.StopDecision, bool) {
			return pickWithinRadius(ctx, m, place, catalog, broker, budget, p)
		},
		func() (domain.StopDecision, bool) {
			return pickCheapestInState(ctx, m, place, catalog, broker)
		},
		func() (domain.StopDecision, bool) {
			return pickNearestResolved(ctx, m, catalog, broker)
		},
		func() (domain.StopDecision, bool) {
			return pickCheapestAnywhere(m, catalog)
		},
	}

	for _, tier := range tiers {
		if d, ok := tier(); ok {
			return d
		}
	}

	// Unreachable for a non-empty catalog: the cheapest-anywhere tier
	// always decides.
	return domain.StopDecision{Marker: m, Point: m.Point, Tier: domain.TierNone}
}

// markerPlace determines the marker's city/state: reverse geocoding when
// enabled, otherwise derived from the nearest station with known
// coordinates. An empty place widens candidate lookup to the whole
// catalog.
func markerPlace(
	ctx context.Context,
	m domain.Marker,
	catalog *stations.Catalog,
	broker *geocode.Broker,
	p SelectParams,
) ports.Place {
	if p.UseReverseGeocoding {
		if place, ok := broker.ReverseCityState(ctx, m.Point); ok {
			return place
		}
		return ports.Place{}
	}

	if st, _, ok := nearestResolved(ctx, m.Point, catalog.All(), broker); ok {
		return ports.Place{City: st.City, State: st.State}
	}
	return ports.Place{}
}

// pickWithinRadius is the primary selection: cheapest station within the
// search radius. Unresolved candidates are geocoded cheapest-first while
// budget remains, so budget is spent on the stations most likely to win.
// Tie-break: lowest price, then smallest distance, then first-encountered.
func pickWithinRadius(
	ctx context.Context,
	m domain.Marker,
	place ports.Place,
	catalog *stations.Catalog,
	broker *geocode.Broker,
	budget *geocode.Budget,
	p SelectParams,
) (domain.StopDecision, bool) {
	pool := catalog.Candidates(place.City, place.State)
	if len(pool) == 0 {
		pool = catalog.ByPrice()
	}

	var (
		best       *domain.Station
		bestCoords domain.Coordinates
		bestDist   float64
	)
	for _, st := range stations.SortedByPrice(pool) {
		coords, ok := broker.Resolve(ctx, st, budget, p.AllowStationGeocoding)
		if !ok {
			continue
		}
		d := geo.HaversineMiles(coords, m.Point)
		if d > p.RadiusMiles {
			continue
		}
		if best == nil ||
			st.PricePerGallon < best.PricePerGallon ||
			(st.PricePerGallon == best.PricePerGallon && d < bestDist) {
			best = st
			bestCoords = coords
			bestDist = d
		}
	}

	if best == nil {
		return domain.StopDecision{}, false
	}
	return domain.StopDecision{
		Marker:        m,
		Point:         m.Point,
		Station:       best,
		StationCoords: &bestCoords,
		Tier:          domain.TierRadius,
	}, true
}

// pickCheapestInState selects the cheapest resolved station in the
// marker's state regardless of distance. Requires a known marker state;
// unresolved stations are skipped, not geocoded (the budget was already
// offered to the primary pass).
func pickCheapestInState(
	ctx context.Context,
	m domain.Marker,
	place ports.Place,
	catalog *stations.Catalog,
	broker *geocode.Broker,
) (domain.StopDecision, bool) {
	if place.State == "" {
		return domain.StopDecision{}, false
	}

	for _, st := range stations.SortedByPrice(catalog.ForState(place.State)) {
		coords, ok := broker.Resolve(ctx, st, nil, false)
		if !ok {
			continue
		}
		return domain.StopDecision{
			Marker:        m,
			Point:         m.Point,
			Station:       st,
			StationCoords: &coords,
			Tier:          domain.TierInState,
			Note:          "no station within radius; cheapest in-state station selected regardless of distance",
		}, true
	}
	return domain.StopDecision{}, false
}

// pickNearestResolved selects the station with known coordinates closest
// to the marker, regardless of price or state.
func pickNearestResolved(
	ctx context.Context,
	m domain.Marker,
	catalog *stations.Catalog,
	broker *geocode.Broker,
) (domain.StopDecision, bool) {
	st, coords, ok := nearestResolved(ctx, m.Point, catalog.All(), broker)
	if !ok {
		return domain.StopDecision{}, false
	}
	return domain.StopDecision{
		Marker:        m,
		Point:         m.Point,
		Station:       st,
		StationCoords: &coords,
		Tier:          domain.TierNearest,
		Note:          "no in-state match; nearest station with known coordinates selected",
	}, true
}

// pickCheapestAnywhere is the last resort when nothing in the catalog has
// coordinates: the cheapest-priced station overall, location approximate.
func pickCheapestAnywhere(m domain.Marker, catalog *stations.Catalog) (domain.StopDecision, bool) {
	byPrice := catalog.ByPrice()
	if len(byPrice) == 0 {
		return domain.StopDecision{}, false
	}
	return domain.StopDecision{
		Marker:  m,
		Point:   m.Point,
		Station: byPrice[0],
		Tier:    domain.TierCheapest,
		Note:    "no station coordinates available; cheapest station selected, location approximate",
	}, true
}

// nearestResolved scans for the closest station with known coordinates,
// consulting only the memo and persistent cache (no budget spend).
func nearestResolved(
	ctx context.Context,
	target domain.Coordinates,
	pool []*domain.Station,
	broker *geocode.Broker,
) (*domain.Station, domain.Coordinates, bool) {
	var (
		best       *domain.Station
		bestCoords domain.Coordinates
		bestDist   float64
	)
	for _, st := range pool {
		coords, ok := broker.Resolve(ctx, st, nil, false)
		if !ok {
			continue
		}
		d := geo.HaversineMiles(coords, target)
		if best == nil || d < bestDist {
			best = st
			bestCoords = coords
			bestDist = d
		}
	}
	if best == nil {
		return nil, domain.Coordinates{}, false
	}
	return best, bestCoords, true
}
