package services

import (
	"context"
	"fmt"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geocode"
	"fuel-route-service/internal/stations"
)

// PlanParams are the tunables for one planning run.
type PlanParams struct {
	RangeMiles            float64
	MPG                   float64
	StationRadiusMiles    float64
	AllowStationGeocoding bool
	UseReverseGeocoding   bool
	GeocodeBudget         int
}

// Planner composes marker generation, stop selection, and cost
// accumulation over an externally supplied route.
type Planner struct {
	Catalog *stations.Catalog
	Broker  *geocode.Broker
}

func NewPlanner(catalog *stations.Catalog, broker *geocode.Broker) *Planner {
	return &Planner{Catalog: catalog, Broker: broker}
}

// Plan produces a fuel plan for the route. Parameter validation happens
// up front; once planning starts the run always completes with a full
// plan, degrading through the selection tiers as needed.
func (p *Planner) Plan(ctx context.Context, route *domain.Route, params PlanParams) (*domain.FuelPlan, error) {
	if params.MPG <= 0 {
		return nil, fmt.Errorf("plan: mpg %.1f: %w", params.MPG, domain.ErrInvalidParameter)
	}

	markers, err := BuildMarkers(route, params.RangeMiles)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	// One budget for the whole run: marker N's spending is gone for N+1.
	budget := geocode.NewBudget(params.GeocodeBudget)
	stops := SelectStops(ctx, markers, p.Catalog, p.Broker, budget, SelectParams{
		RadiusMiles:           params.StationRadiusMiles,
		AllowStationGeocoding: params.AllowStationGeocoding,
		UseReverseGeocoding:   params.UseReverseGeocoding,
	})

	plan, err := AccumulateCosts(stops, route.DistanceMiles, params.MPG)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	return plan, nil
}
