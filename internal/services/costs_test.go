package services

import (
	"errors"
	"math"
	"testing"

	"fuel-route-service/internal/domain"
)

func stopAt(mile float64, price float64) domain.StopDecision {
	return domain.StopDecision{
		Marker:  domain.Marker{Mile: mile},
		Station: &domain.Station{Name: "S", PricePerGallon: price},
		Tier:    domain.TierRadius,
	}
}

func TestAccumulateCosts(t *testing.T) {
	stops := []domain.StopDecision{
		stopAt(0, 3.00),
		stopAt(500, 3.20),
	}

	plan, err := AccumulateCosts(stops, 1000, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(plan.Legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(plan.Legs))
	}

	// mpg=10 over a 500-mile leg burns 50 gallons; at $3.20 that is $160.
	leg := plan.Legs[1]
	if leg.Gallons != 50 {
		t.Fatalf("leg gallons = %f, want 50", leg.Gallons)
	}
	if leg.Cost == nil || math.Abs(*leg.Cost-160.00) > 1e-9 {
		t.Fatalf("leg cost = %v, want 160.00", leg.Cost)
	}

	if plan.TotalGallons != 100 {
		t.Fatalf("total gallons = %f, want 100", plan.TotalGallons)
	}
	if plan.TotalCost == nil || math.Abs(*plan.TotalCost-310.00) > 1e-9 {
		t.Fatalf("total cost = %v, want 310.00", plan.TotalCost)
	}

	// Leg mileage must reconstruct the route distance.
	var sum float64
	for _, l := range plan.Legs {
		sum += l.Miles
	}
	if math.Abs(sum-1000) > 1e-9 {
		t.Fatalf("leg miles sum = %f, want 1000", sum)
	}
}

func TestAccumulateCostsUnknownPrices(t *testing.T) {
	// A stationless stop contributes gallons but no cost.
	stops := []domain.StopDecision{
		stopAt(0, 3.00),
		{Marker: domain.Marker{Mile: 500}, Tier: domain.TierNone},
	}

	plan, err := AccumulateCosts(stops, 1000, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.Legs[1].Cost != nil {
		t.Fatal("unpriced leg should have nil cost")
	}
	if plan.TotalGallons != 100 {
		t.Fatalf("total gallons = %f, want 100 (unpriced legs still burn fuel)", plan.TotalGallons)
	}
	if plan.PricedGallons != 50 {
		t.Fatalf("priced gallons = %f, want 50", plan.PricedGallons)
	}
	if plan.TotalCost == nil || math.Abs(*plan.TotalCost-150.00) > 1e-9 {
		t.Fatalf("total cost = %v, want 150.00 (known legs only)", plan.TotalCost)
	}
}

func TestAccumulateCostsNoPricesAtAll(t *testing.T) {
	stops := []domain.StopDecision{
		{Marker: domain.Marker{Mile: 0}, Tier: domain.TierNone},
	}

	plan, err := AccumulateCosts(stops, 400, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.TotalCost != nil {
		t.Fatalf("total cost = %v, want nil when nothing is priced", plan.TotalCost)
	}
	if plan.TotalGallons != 40 {
		t.Fatalf("total gallons = %f, want 40", plan.TotalGallons)
	}
}

func TestAccumulateCostsInvalidMPG(t *testing.T) {
	for _, mpg := range []float64{0, -5} {
		if _, err := AccumulateCosts(nil, 1000, mpg); !errors.Is(err, domain.ErrInvalidParameter) {
			t.Fatalf("mpg=%f: err = %v, want ErrInvalidParameter", mpg, err)
		}
	}
}
