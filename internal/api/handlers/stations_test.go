package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fuel-route-service/internal/domain"
)

func testStations() []*domain.Station {
	return []*domain.Station{
		{OPISID: "1", Name: "FIRST", City: "Amarillo", State: "TX", PricePerGallon: 3.10},
		{OPISID: "2", Name: "SECOND", City: "Tucson", State: "AZ", PricePerGallon: 2.80,
			Coordinates: &domain.Coordinates{Lat: 32.2, Lon: -110.9}},
		{OPISID: "3", Name: "THIRD", City: "Flagstaff", State: "AZ", PricePerGallon: 3.40},
	}
}

func getStations(t *testing.T, h *StationHandler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	return rec
}

func decodeStations(t *testing.T, rec *httptest.ResponseRecorder) []struct {
	OPISID string `json:"opis_id"`
} {
	t.Helper()

	var res struct {
		Stations []struct {
			OPISID string `json:"opis_id"`
		} `json:"stations"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res.Stations
}

func TestStationListDatasetOrder(t *testing.T) {
	h := &StationHandler{Stations: testStations()}

	rec := getStations(t, h, "/stations")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	got := decodeStations(t, rec)
	if len(got) != 3 {
		t.Fatalf("got %d stations", len(got))
	}
	for i, want := range []string{"1", "2", "3"} {
		if got[i].OPISID != want {
			t.Errorf("station[%d] = %q, want %q", i, got[i].OPISID, want)
		}
	}
}

func TestStationListSortedByPrice(t *testing.T) {
	h := &StationHandler{Stations: testStations()}

	got := decodeStations(t, getStations(t, h, "/stations?sort=price"))
	for i, want := range []string{"2", "1", "3"} {
		if got[i].OPISID != want {
			t.Errorf("station[%d] = %q, want %q", i, got[i].OPISID, want)
		}
	}
}

func TestStationListLimit(t *testing.T) {
	h := &StationHandler{Stations: testStations()}

	got := decodeStations(t, getStations(t, h, "/stations?limit=2"))
	if len(got) != 2 {
		t.Fatalf("got %d stations, want 2", len(got))
	}

	rec := getStations(t, h, "/stations?limit=-1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for negative limit", rec.Code)
	}
}
