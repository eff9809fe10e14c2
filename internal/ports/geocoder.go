package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// GeocodeResult is a forward-geocoding hit. City and State are filled when
// the provider reports them; callers use State to reject false matches on
// ambiguous place names.
type GeocodeResult struct {
	Coordinates domain.Coordinates
	City        string
	State       string
}

// Place is a reverse-geocoding hit for a coordinate.
type Place struct {
	City  string
	State string
}

// Contract for resolving text locations to coordinates and back.
// Implementations must honor the context deadline; a timed-out call is a
// failed attempt, not a hang.
type Geocoder interface {
	// Geocode resolves a free-form query. The boolean is false when the
	// provider had no match (not an error).
	Geocode(ctx context.Context, query string) (GeocodeResult, bool, error)

	// ReverseGeocode resolves a coordinate to its city and state.
	ReverseGeocode(ctx context.Context, coord domain.Coordinates) (Place, bool, error)
}
