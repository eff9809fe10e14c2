// Package mapbox implements the directions and geocoding ports against
// the Mapbox HTTP APIs.
package mapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

const milesPerMeter = 1.0 / 1609.344

// Client talks to the Mapbox Directions and Geocoding APIs. It is safe
// for concurrent use; transient failures are retried with backoff.
type Client struct {
	session     *http.Client
	accessToken string
	baseURL     string
}

func NewClient(accessToken string) (*Client, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, errors.New("mapbox access token is empty")
	}

	return &Client{
		session:     &http.Client{Timeout: 10 * time.Second},
		accessToken: accessToken,
		baseURL:     "https://api.mapbox.com",
	}, nil
}

type directionsResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Directions fetches a driving route between two coordinates. No route in
// the response is an error: the caller cannot plan without one.
func (c *Client) Directions(ctx context.Context, start, end domain.Coordinates) (*domain.Route, error) {
	path := fmt.Sprintf("/directions/v5/mapbox/driving/%f,%f;%f,%f",
		start.Lon, start.Lat, end.Lon, end.Lat)

	query := url.Values{}
	query.Set("geometries", "geojson")
	query.Set("overview", "full")
	query.Set("annotations", "distance,duration")

	var decoded directionsResponse
	if err := c.getJSON(ctx, path, query, &decoded); err != nil {
		return nil, fmt.Errorf("mapbox directions: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return nil, errors.New("mapbox directions: no routes returned")
	}

	r := decoded.Routes[0]
	points := make([]domain.Coordinates, 0, len(r.Geometry.Coordinates))
	for _, pair := range r.Geometry.Coordinates {
		if len(pair) != 2 {
			return nil, fmt.Errorf("mapbox directions: invalid coordinate pair %v", pair)
		}
		points = append(points, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("mapbox directions: geometry has %d points, need at least 2", len(points))
	}

	return &domain.Route{
		Points:          points,
		DistanceMiles:   r.Distance * milesPerMeter,
		DurationMinutes: r.Duration / 60,
	}, nil
}

type geocodeResponse struct {
	Features []struct {
		Text      string   `json:"text"`
		PlaceType []string `json:"place_type"`
		Center    []float64 `json:"center"`
		Context   []struct {
			ID        string `json:"id"`
			Text      string `json:"text"`
			ShortCode string `json:"short_code"`
		} `json:"context"`
	} `json:"features"`
}

// Geocode resolves a free-form query to coordinates, restricted to the US.
func (c *Client) Geocode(ctx context.Context, queryText string) (ports.GeocodeResult, bool, error) {
	path := "/geocoding/v5/mapbox.places/" + url.PathEscape(queryText) + ".json"

	query := url.Values{}
	query.Set("limit", "1")
	query.Set("country", "US")

	var decoded geocodeResponse
	if err := c.getJSON(ctx, path, query, &decoded); err != nil {
		return ports.GeocodeResult{}, false, fmt.Errorf("mapbox geocode %q: %w", queryText, err)
	}

	if len(decoded.Features) == 0 {
		return ports.GeocodeResult{}, false, nil
	}

	f := decoded.Features[0]
	if len(f.Center) != 2 {
		return ports.GeocodeResult{}, false, fmt.Errorf("mapbox geocode %q: invalid center %v", queryText, f.Center)
	}

	res := ports.GeocodeResult{
		Coordinates: domain.Coordinates{Lon: f.Center[0], Lat: f.Center[1]},
		City:        f.Text,
	}
	for _, ctxEntry := range f.Context {
		if strings.HasPrefix(ctxEntry.ID, "region.") && ctxEntry.ShortCode != "" {
			res.State = stateFromShortCode(ctxEntry.ShortCode)
			break
		}
	}
	return res, true, nil
}

// ReverseGeocode resolves a coordinate to its city and state short code.
func (c *Client) ReverseGeocode(ctx context.Context, coord domain.Coordinates) (ports.Place, bool, error) {
	path := fmt.Sprintf("/geocoding/v5/mapbox.places/%f,%f.json", coord.Lon, coord.Lat)

	query := url.Values{}
	query.Set("limit", "1")
	query.Set("types", "place,region,locality")
	query.Set("country", "US")

	var decoded geocodeResponse
	if err := c.getJSON(ctx, path, query, &decoded); err != nil {
		return ports.Place{}, false, fmt.Errorf("mapbox reverse geocode: %w", err)
	}

	if len(decoded.Features) == 0 {
		return ports.Place{}, false, nil
	}

	f := decoded.Features[0]
	place := ports.Place{City: f.Text}
	for _, ctxEntry := range f.Context {
		if strings.HasPrefix(ctxEntry.ID, "region.") && ctxEntry.ShortCode != "" {
			place.State = stateFromShortCode(ctxEntry.ShortCode)
			break
		}
	}

	if place.City == "" || place.State == "" {
		return ports.Place{}, false, nil
	}
	return place, true, nil
}

// stateFromShortCode turns a region short code like "US-MI" into "MI".
func stateFromShortCode(code string) string {
	parts := strings.Split(code, "-")
	return strings.ToUpper(parts[len(parts)-1])
}

// getJSON performs a GET against the Mapbox API with retry and decodes the
// response body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	makeReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		q := req.URL.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		q.Set("access_token", c.accessToken)
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := c.doWithRetry(ctx, makeReq)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
