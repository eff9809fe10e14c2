// Package geo holds the route polyline math: great-circle distances,
// cumulative mileage, interpolation at a target mile, and point-to-polyline
// distance. All distances are statute miles.
package geo

import (
	"math"

	"fuel-route-service/internal/domain"
)

// Mean Earth radius in statute miles.
const earthRadiusMiles = 3958.8

// MilesPerDegreeLat approximates one degree of latitude, used for cheap
// bounding-box margins where great-circle precision is unnecessary.
const MilesPerDegreeLat = 69.0

// HaversineMiles returns the great-circle distance between two points.
func HaversineMiles(a, b domain.Coordinates) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMiles * c
}

// CumulativeMiles returns the running distance along the polyline,
// one entry per point, starting at 0.
func CumulativeMiles(points []domain.Coordinates) []float64 {
	if len(points) == 0 {
		return nil
	}
	out := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		out[i] = out[i-1] + HaversineMiles(points[i-1], points[i])
	}
	return out
}

// PointAtMile returns the point along the polyline at the requested
// cumulative distance, interpolating linearly between the bracketing
// points. Out-of-range targets clamp to the endpoints.
func PointAtMile(points []domain.Coordinates, cumulative []float64, mile float64) domain.Coordinates {
	if mile <= 0 || len(points) == 1 {
		return points[0]
	}
	last := len(cumulative) - 1
	if mile >= cumulative[last] {
		return points[last]
	}
	for i := 1; i < len(cumulative); i++ {
		if cumulative[i] < mile {
			continue
		}
		segLen := cumulative[i] - cumulative[i-1]
		ratio := 0.0
		if segLen > 0 {
			ratio = (mile - cumulative[i-1]) / segLen
		}
		return domain.Coordinates{
			Lat: points[i-1].Lat + (points[i].Lat-points[i-1].Lat)*ratio,
			Lon: points[i-1].Lon + (points[i].Lon-points[i-1].Lon)*ratio,
		}
	}
	return points[last]
}

// DistanceToPolylineMiles returns the closest distance from the target to
// any segment of the polyline.
func DistanceToPolylineMiles(target domain.Coordinates, points []domain.Coordinates) float64 {
	closest := math.Inf(1)
	for i := 1; i < len(points); i++ {
		d := pointToSegmentMiles(target, points[i-1], points[i])
		if d < closest {
			closest = d
		}
	}
	return closest
}

// pointToSegmentMiles approximates the shortest distance from a point to a
// segment by projecting in plain lat/lon space, then measuring the
// great-circle distance to the projection. Good enough at the segment
// lengths a driving polyline produces.
func pointToSegmentMiles(p, a, b domain.Coordinates) float64 {
	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	if dx == 0 && dy == 0 {
		return HaversineMiles(p, a)
	}
	t := ((p.Lon-a.Lon)*dx + (p.Lat-a.Lat)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	proj := domain.Coordinates{
		Lat: a.Lat + t*dy,
		Lon: a.Lon + t*dx,
	}
	return HaversineMiles(p, proj)
}

// Downsample caps the number of polyline points to bound CPU work on
// per-station distance scans. Endpoints are always preserved.
func Downsample(points []domain.Coordinates, maxPoints int) []domain.Coordinates {
	if maxPoints < 2 || len(points) <= maxPoints {
		return points
	}
	step := len(points) / maxPoints
	if step < 1 {
		step = 1
	}
	out := make([]domain.Coordinates, 0, maxPoints+1)
	for i := 0; i < len(points); i += step {
		out = append(out, points[i])
	}
	if out[len(out)-1] != points[len(points)-1] {
		out = append(out, points[len(points)-1])
	}
	return out
}
