// Package services holds the fuel planning engine: marker generation,
// stop selection, and cost accumulation.
package services

import (
	"fmt"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
)

// BuildMarkers places fuel-stop markers along the route at 0, R, 2R, …
// strictly below the total distance. No marker is emitted at the
// destination: there is no leg past it, so no fuel stop is needed there.
//
// Marker coordinates are interpolated on the polyline at the target
// cumulative mile. The route's reported distance governs marker placement
// even when it differs slightly from the polyline's summed length.
func BuildMarkers(route *domain.Route, rangeMiles float64) ([]domain.Marker, error) {
	if rangeMiles <= 0 {
		return nil, fmt.Errorf("build markers: range %.1f miles: %w", rangeMiles, domain.ErrInvalidParameter)
	}
	if route == nil || len(route.Points) < 2 {
		return nil, fmt.Errorf("build markers: route needs at least 2 points: %w", domain.ErrInvalidParameter)
	}

	cumulative := geo.CumulativeMiles(route.Points)

	markers := []domain.Marker{{Mile: 0, Point: route.Points[0]}}
	if route.DistanceMiles <= 0 {
		return markers, nil
	}

	for mile := rangeMiles; mile < route.DistanceMiles; mile += rangeMiles {
		markers = append(markers, domain.Marker{
			Mile:  mile,
			Point: geo.PointAtMile(route.Points, cumulative, mile),
		})
	}
	return markers, nil
}
