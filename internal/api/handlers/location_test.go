package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"fuel-route-service/internal/adapters/mapbox"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

func TestParseLocation(t *testing.T) {
	geocoder := &mapbox.MockGeocoder{
		Results: map[string]ports.GeocodeResult{
			"Amarillo, TX": {Coordinates: domain.Coordinates{Lat: 35.2, Lon: -101.8}},
		},
	}

	cases := []struct {
		name string
		raw  string
		want domain.Coordinates
	}{
		{"object", `{"lat": 35, "lon": -100}`, domain.Coordinates{Lat: 35, Lon: -100}},
		{"pair", `[35.5, -100.5]`, domain.Coordinates{Lat: 35.5, Lon: -100.5}},
		{"lat,lon string", `"35.25, -100.75"`, domain.Coordinates{Lat: 35.25, Lon: -100.75}},
		{"address", `"Amarillo, TX"`, domain.Coordinates{Lat: 35.2, Lon: -101.8}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseLocation(context.Background(), json.RawMessage(tc.raw), geocoder)
			if err != nil {
				t.Fatalf("parseLocation(%s): %v", tc.raw, err)
			}
			if got != tc.want {
				t.Errorf("parseLocation(%s) = %+v, want %+v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseLocationErrors(t *testing.T) {
	geocoder := &mapbox.MockGeocoder{}

	cases := []struct {
		name string
		raw  string
	}{
		{"missing", ``},
		{"empty string", `""`},
		{"wrong pair length", `[35, -100, 7]`},
		{"out of range", `[95, -100]`},
		{"unresolvable address", `"Nowhere At All"`},
		{"unsupported type", `true`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseLocation(context.Background(), json.RawMessage(tc.raw), geocoder); err == nil {
				t.Errorf("parseLocation(%s): expected error", tc.raw)
			}
		})
	}
}
