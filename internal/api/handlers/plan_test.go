package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fuel-route-service/internal/adapters/mapbox"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geocode"
	"fuel-route-service/internal/ports"
)

func testDefaults() PlanDefaults {
	return PlanDefaults{
		RangeMiles:         500,
		MPG:                10,
		StationRadiusMiles: 50,
		GeocodeBudget:      50,
	}
}

func testPlanHandler(t *testing.T) (*PlanHandler, *mapbox.MockDirections) {
	t.Helper()

	start := domain.Coordinates{Lat: 35, Lon: -100}
	end := domain.Coordinates{Lat: 36, Lon: -100}

	directions := &mapbox.MockDirections{
		Routes: map[string]*domain.Route{
			mapbox.RouteKey(start, end): {
				Points:          []domain.Coordinates{start, end},
				DistanceMiles:   400,
				DurationMinutes: 360,
			},
		},
	}

	sts := []*domain.Station{
		{
			OPISID: "10", Name: "NEAR START", Address: "I-40 EXIT 1",
			City: "Amarillo", State: "TX", PricePerGallon: 3.00,
			Coordinates: &domain.Coordinates{Lat: 35.01, Lon: -100},
		},
		{
			OPISID: "20", Name: "CHEAP FAR", Address: "I-10 EXIT 9",
			City: "Tucson", State: "AZ", PricePerGallon: 2.50,
			Coordinates: &domain.Coordinates{Lat: 32.2, Lon: -110.9},
		},
	}

	geocoder := &mapbox.MockGeocoder{}
	broker := geocode.NewBroker(geocoder, mapbox.NewMockCoordinateCache())

	return &PlanHandler{
		Stations:   sts,
		Broker:     broker,
		Directions: directions,
		Geocoder:   geocoder,
		Defaults:   testDefaults(),
	}, directions
}

func postPlan(t *testing.T, h *PlanHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)
	return rec
}

func TestPlanEndToEnd(t *testing.T) {
	h, _ := testPlanHandler(t)

	rec := postPlan(t, h, `{"start": "35,-100", "end": [36, -100]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Route struct {
			DistanceMiles float64 `json:"distance_miles"`
		} `json:"route"`
		FuelPlan struct {
			Stops []struct {
				MarkerMile float64 `json:"marker_mile"`
				Tier       string  `json:"tier"`
				Station    *struct {
					OPISID string `json:"opis_id"`
				} `json:"station"`
			} `json:"stops"`
			Summary struct {
				TotalCost     *float64 `json:"total_cost"`
				GallonsNeeded float64  `json:"gallons_needed"`
			} `json:"summary"`
		} `json:"fuel_plan"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.Route.DistanceMiles != 400 {
		t.Errorf("distance = %v, want 400", res.Route.DistanceMiles)
	}
	// 400 miles with a 500-mile range needs exactly one stop, at the start.
	if len(res.FuelPlan.Stops) != 1 {
		t.Fatalf("got %d stops, want 1", len(res.FuelPlan.Stops))
	}
	stop := res.FuelPlan.Stops[0]
	if stop.MarkerMile != 0 || stop.Tier != "radius" {
		t.Errorf("stop = %+v", stop)
	}
	if stop.Station == nil || stop.Station.OPISID != "10" {
		t.Errorf("station = %+v, want nearby station 10", stop.Station)
	}

	if res.FuelPlan.Summary.GallonsNeeded != 40 {
		t.Errorf("gallons = %v, want 40", res.FuelPlan.Summary.GallonsNeeded)
	}
	if res.FuelPlan.Summary.TotalCost == nil || *res.FuelPlan.Summary.TotalCost != 120 {
		t.Errorf("total cost = %v, want 120", res.FuelPlan.Summary.TotalCost)
	}
}

func TestPlanGeocodesFreeFormAddress(t *testing.T) {
	h, _ := testPlanHandler(t)
	h.Geocoder = &mapbox.MockGeocoder{
		Results: map[string]ports.GeocodeResult{
			"Amarillo, TX": {
				Coordinates: domain.Coordinates{Lat: 35, Lon: -100},
				City:        "Amarillo", State: "TX",
			},
		},
	}

	rec := postPlan(t, h, `{"start": "Amarillo, TX", "end": [36, -100]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestPlanUnresolvableAddress(t *testing.T) {
	h, _ := testPlanHandler(t)

	rec := postPlan(t, h, `{"start": "Nowhere At All", "end": [36, -100]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for unresolvable address", rec.Code)
	}
}

func TestPlanRejectsUnknownFields(t *testing.T) {
	h, _ := testPlanHandler(t)

	rec := postPlan(t, h, `{"start": "35,-100", "end": [36, -100], "fuel": "diesel"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlanRejectsInvalidParams(t *testing.T) {
	h, _ := testPlanHandler(t)

	rec := postPlan(t, h, `{"start": "35,-100", "end": [36, -100], "mpg": -5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlanDirectionsFailure(t *testing.T) {
	h, directions := testPlanHandler(t)
	directions.Err = errors.New("upstream timeout")

	rec := postPlan(t, h, `{"start": "35,-100", "end": [36, -100]}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestPlanMethodNotAllowed(t *testing.T) {
	h, _ := testPlanHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/plan", nil)
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
