package services

import (
	"fmt"

	"fuel-route-service/internal/domain"
)

// AccumulateCosts turns the ordered stop decisions into per-leg fuel usage
// and trip totals.
//
// Legs run from each stop to the next boundary (the following stop, or
// the route end after the last stop), so each leg is priced at the stop
// you refuel at before driving it. The vehicle is assumed to start full;
// the first stop sits at mile 0, making the start-to-first-stop leg zero
// length and unpriced by construction.
//
// Legs without a known price keep their gallons in the trip total but are
// excluded from the cost total. TotalCost is nil only when no leg at all
// had a price.
func AccumulateCosts(stops []domain.StopDecision, totalMiles, mpg float64) (*domain.FuelPlan, error) {
	if mpg <= 0 {
		return nil, fmt.Errorf("accumulate costs: mpg %.1f: %w", mpg, domain.ErrInvalidParameter)
	}

	plan := &domain.FuelPlan{
		Stops:        stops,
		Legs:         make([]domain.LegCost, 0, len(stops)),
		TotalGallons: totalMiles / mpg,
	}

	var (
		totalCost  float64
		havePriced bool
	)
	for i, stop := range stops {
		from := stop.Marker.Mile
		to := totalMiles
		if i+1 < len(stops) {
			to = stops[i+1].Marker.Mile
		}

		miles := to - from
		gallons := miles / mpg
		leg := domain.LegCost{
			FromMile: from,
			ToMile:   to,
			Miles:    miles,
			Gallons:  gallons,
		}

		if price, ok := stop.Price(); ok {
			cost := gallons * price
			leg.PricePerGallon = &price
			leg.Cost = &cost
			plan.PricedGallons += gallons
			totalCost += cost
			havePriced = true
		}

		plan.Legs = append(plan.Legs, leg)
	}

	if havePriced {
		plan.TotalCost = &totalCost
	}
	return plan, nil
}
