package services

import (
	"errors"
	"math"
	"testing"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
)

// straightRoute returns a due-north polyline whose reported distance is
// totalMiles. The polyline's summed length matches closely enough for
// marker interpolation.
func straightRoute(totalMiles float64) *domain.Route {
	const milesPerDegree = 3958.8 * math.Pi / 180

	start := domain.Coordinates{Lat: 35.0, Lon: -100.0}
	end := domain.Coordinates{Lat: 35.0 + totalMiles/milesPerDegree, Lon: -100.0}
	mid := domain.Coordinates{Lat: (start.Lat + end.Lat) / 2, Lon: -100.0}

	return &domain.Route{
		Points:          []domain.Coordinates{start, mid, end},
		DistanceMiles:   totalMiles,
		DurationMinutes: totalMiles, // ~60mph, irrelevant to planning
	}
}

func TestBuildMarkers(t *testing.T) {
	tests := []struct {
		name       string
		totalMiles float64
		rangeMiles float64
		wantMiles  []float64
	}{
		{"two markers", 1000, 500, []float64{0, 500}},
		{"exact multiple excludes destination", 1500, 500, []float64{0, 500, 1000}},
		{"shorter than range", 100, 500, []float64{0}},
		{"uneven split", 1200, 500, []float64{0, 500, 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markers, err := BuildMarkers(straightRoute(tt.totalMiles), tt.rangeMiles)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(markers) != len(tt.wantMiles) {
				t.Fatalf("got %d markers, want %d", len(markers), len(tt.wantMiles))
			}
			for i, want := range tt.wantMiles {
				if markers[i].Mile != want {
					t.Fatalf("marker[%d].Mile = %f, want %f", i, markers[i].Mile, want)
				}
				if i > 0 && markers[i].Mile <= markers[i-1].Mile {
					t.Fatalf("markers not strictly increasing at %d", i)
				}
			}
		})
	}
}

func TestBuildMarkersInterpolatesPoints(t *testing.T) {
	route := straightRoute(1000)
	markers, err := BuildMarkers(route, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if markers[0].Point != route.Points[0] {
		t.Fatalf("first marker point = %+v, want route start", markers[0].Point)
	}

	cum := geo.CumulativeMiles(route.Points)
	want := geo.PointAtMile(route.Points, cum, 500)
	if markers[1].Point != want {
		t.Fatalf("marker at 500 = %+v, want %+v", markers[1].Point, want)
	}
}

func TestBuildMarkersInvalidInput(t *testing.T) {
	if _, err := BuildMarkers(straightRoute(1000), 0); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("zero range: err = %v, want ErrInvalidParameter", err)
	}
	if _, err := BuildMarkers(straightRoute(1000), -50); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("negative range: err = %v, want ErrInvalidParameter", err)
	}
	if _, err := BuildMarkers(nil, 500); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("nil route: err = %v, want ErrInvalidParameter", err)
	}
	short := &domain.Route{Points: []domain.Coordinates{{Lat: 1, Lon: 1}}, DistanceMiles: 10}
	if _, err := BuildMarkers(short, 500); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("single-point route: err = %v, want ErrInvalidParameter", err)
	}
}

func TestBuildMarkersCountProperty(t *testing.T) {
	// floor(D/R) markers when D is not a multiple of R (plus the 0 marker
	// replaces one), exactly D/R when it is.
	for _, tc := range []struct {
		d, r float64
		want int
	}{
		{1000, 500, 2},
		{1001, 500, 3},
		{499, 500, 1},
		{500, 500, 1},
		{2500, 500, 5},
	} {
		markers, err := BuildMarkers(straightRoute(tc.d), tc.r)
		if err != nil {
			t.Fatalf("D=%f R=%f: %v", tc.d, tc.r, err)
		}
		if len(markers) != tc.want {
			t.Fatalf("D=%f R=%f: %d markers, want %d", tc.d, tc.r, len(markers), tc.want)
		}
	}
}
