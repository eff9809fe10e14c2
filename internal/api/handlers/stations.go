package handlers

import (
	"net/http"
	"strconv"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/stations"
)

// StationHandler exposes read-only access to the loaded fuel-price dataset.
type StationHandler struct {
	Stations []*domain.Station
}

// List returns stations in dataset order, price-ascending when
// sort=price, optionally truncated by limit.
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sts := h.Stations
	if r.URL.Query().Get("sort") == "price" {
		sts = stations.SortedByPrice(sts)
	}

	limit := len(sts)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		if n < limit {
			limit = n
		}
	}

	res := dto.ListStationsResponse{
		Stations: make([]dto.StationResponse, 0, limit),
	}
	for _, st := range sts[:limit] {
		res.Stations = append(res.Stations, *stationResponse(st))
	}

	writeJSON(w, r, http.StatusOK, res)
}
