package domain

// Route is a driving route polyline with provider-reported totals.
// Invariant: at least two points; DistanceMiles is the provider's figure
// and may differ slightly from the polyline's summed segment lengths.
type Route struct {
	Points          []Coordinates
	DistanceMiles   float64
	DurationMinutes float64
}

// Marker is a target mile offset along the route where a fuel stop is
// evaluated, together with the route point at that offset. Markers are
// generated once per planning run and read-only thereafter.
type Marker struct {
	Mile  float64
	Point Coordinates
}
