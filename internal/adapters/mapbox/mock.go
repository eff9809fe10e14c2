package mapbox

import (
	"context"
	"fmt"
	"sync"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// MockGeocoder is an in-memory ports.Geocoder for tests. Forward results
// are keyed by the exact query string; reverse results by the coordinate
// rounded to four decimals.
type MockGeocoder struct {
	Results map[string]ports.GeocodeResult
	Places  map[string]ports.Place
	Err     error

	mu           sync.Mutex
	ForwardCalls int
	ReverseCalls int
}

func ReverseKey(coord domain.Coordinates) string {
	return fmt.Sprintf("%.4f,%.4f", coord.Lat, coord.Lon)
}

func (m *MockGeocoder) Geocode(ctx context.Context, query string) (ports.GeocodeResult, bool, error) {
	m.mu.Lock()
	m.ForwardCalls++
	m.mu.Unlock()

	if m.Err != nil {
		return ports.GeocodeResult{}, false, m.Err
	}
	res, ok := m.Results[query]
	return res, ok, nil
}

func (m *MockGeocoder) ReverseGeocode(ctx context.Context, coord domain.Coordinates) (ports.Place, bool, error) {
	m.mu.Lock()
	m.ReverseCalls++
	m.mu.Unlock()

	if m.Err != nil {
		return ports.Place{}, false, m.Err
	}
	place, ok := m.Places[ReverseKey(coord)]
	return place, ok, nil
}

// MockCoordinateCache is an in-memory ports.CoordinateCache for tests.
type MockCoordinateCache struct {
	mu    sync.Mutex
	items map[string]domain.Coordinates

	GetCalls int
	PutCalls int
}

func NewMockCoordinateCache() *MockCoordinateCache {
	return &MockCoordinateCache{items: make(map[string]domain.Coordinates)}
}

func (m *MockCoordinateCache) GetMany(ctx context.Context, keys []string) (map[string]domain.Coordinates, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++

	out := make(map[string]domain.Coordinates)
	for _, k := range keys {
		if c, ok := m.items[k]; ok {
			out[k] = c
		}
	}
	return out, nil
}

func (m *MockCoordinateCache) PutMany(ctx context.Context, coords map[string]domain.Coordinates) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls++

	for k, c := range coords {
		m.items[k] = c
	}
	return nil
}

// Len reports the number of cached entries.
func (m *MockCoordinateCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
