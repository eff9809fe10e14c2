package mapbox

import (
	"context"
	"fmt"

	"fuel-route-service/internal/domain"
)

// MockDirections is an in-memory ports.DirectionsProvider for tests.
// Routes are keyed by the start/end pair rounded to four decimals.
type MockDirections struct {
	Routes map[string]*domain.Route
	Err    error

	Calls int
}

func RouteKey(start, end domain.Coordinates) string {
	return ReverseKey(start) + "|" + ReverseKey(end)
}

func (m *MockDirections) Directions(ctx context.Context, start, end domain.Coordinates) (*domain.Route, error) {
	m.Calls++

	if m.Err != nil {
		return nil, m.Err
	}
	r, ok := m.Routes[RouteKey(start, end)]
	if !ok {
		return nil, fmt.Errorf("missing route %q", RouteKey(start, end))
	}
	return r, nil
}
