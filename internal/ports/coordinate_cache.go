package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// Port: durable station-key -> coordinates storage shared across runs and
// across process restarts. Keys are domain.Station.Key() values. Entries
// are never invalidated; PutMany must be an atomic upsert per key.
type CoordinateCache interface {
	// Fetch cached coordinates for the given station keys. Missing keys are
	// simply absent from the result.
	GetMany(ctx context.Context, keys []string) (map[string]domain.Coordinates, error)

	// Store station-key -> coordinate mappings.
	PutMany(ctx context.Context, coords map[string]domain.Coordinates) error
}
