package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// parseLocation resolves a request location field into coordinates.
// Accepted shapes: {"lat":..,"lon":..}, [lat, lon], "lat,lon", or any
// other string treated as an address and geocoded.
func parseLocation(ctx context.Context, raw json.RawMessage, geocoder ports.Geocoder) (domain.Coordinates, error) {
	if len(raw) == 0 {
		return domain.Coordinates{}, fmt.Errorf("parse location: missing value")
	}

	var obj struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Lat != nil && obj.Lon != nil {
		return validCoords(*obj.Lat, *obj.Lon)
	}

	var pair []float64
	if err := json.Unmarshal(raw, &pair); err == nil {
		if len(pair) != 2 {
			return domain.Coordinates{}, fmt.Errorf("parse location: coordinate pair must have 2 elements, got %d", len(pair))
		}
		return validCoords(pair[0], pair[1])
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse location: unsupported value")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Coordinates{}, fmt.Errorf("parse location: empty value")
	}

	if latStr, lonStr, ok := strings.Cut(text, ","); ok {
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if errLat == nil && errLon == nil {
			return validCoords(lat, lon)
		}
	}

	res, found, err := geocoder.Geocode(ctx, text)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse location: geocode %q: %w", text, err)
	}
	if !found {
		return domain.Coordinates{}, fmt.Errorf("parse location: no match for %q", text)
	}
	return res.Coordinates, nil
}

func validCoords(lat, lon float64) (domain.Coordinates, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return domain.Coordinates{}, fmt.Errorf("parse location: coordinates out of range: %.4f,%.4f", lat, lon)
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
