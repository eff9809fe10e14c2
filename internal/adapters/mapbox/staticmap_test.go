package mapbox

import (
	"strings"
	"testing"

	"fuel-route-service/internal/domain"
)

func TestEncodePolyline(t *testing.T) {
	// Reference vector from the polyline algorithm documentation.
	points := []domain.Coordinates{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	}

	const want = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
	if got := encodePolyline(points); got != want {
		t.Fatalf("encodePolyline = %q, want %q", got, want)
	}
}

func TestStaticMapURL(t *testing.T) {
	c := &Client{accessToken: "tok", baseURL: "https://api.mapbox.com"}

	route := &domain.Route{
		Points: []domain.Coordinates{
			{Lat: 38.5, Lon: -120.2},
			{Lat: 40.7, Lon: -120.95},
		},
	}
	start := route.Points[0]
	end := route.Points[1]
	stop := domain.Coordinates{Lat: 39.0, Lon: -120.5}

	got := c.StaticMapURL(route, []domain.Coordinates{stop}, start, end)

	for _, fragment := range []string{
		"/styles/v1/mapbox/streets-v12/static/",
		"path-4+0066ff-0.7(",
		"pin-s-a+00aa55(",
		"pin-s-b+111111(",
		"pin-s+f44(",
		"800x400",
		"access_token=tok",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("URL missing %q:\n%s", fragment, got)
		}
	}
}
