package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// Contract for retrieving a driving route between two coordinates.
// A failure here is fatal to the planning request: without a route there
// is nothing to plan over.
type DirectionsProvider interface {
	Directions(ctx context.Context, start, end domain.Coordinates) (*domain.Route, error)
}

// Optional extension for providers that can render a static map image of
// the route with the planned stops drawn on it.
type StaticMapBuilder interface {
	StaticMapURL(route *domain.Route, stops []domain.Coordinates, start, end domain.Coordinates) string
}
