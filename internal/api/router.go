package api

import (
	"net/http"

	"fuel-route-service/internal/api/handlers"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geocode"
	"fuel-route-service/internal/ports"
)

// Deps are the concrete collaborators the HTTP surface needs. Maps is
// optional; when nil responses omit the static map URL.
type Deps struct {
	Stations   []*domain.Station
	Broker     *geocode.Broker
	Directions ports.DirectionsProvider
	Geocoder   ports.Geocoder
	Maps       ports.StaticMapBuilder
	Defaults   handlers.PlanDefaults
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	stationHandler := &handlers.StationHandler{Stations: deps.Stations}
	planHandler := &handlers.PlanHandler{
		Stations:   deps.Stations,
		Broker:     deps.Broker,
		Directions: deps.Directions,
		Geocoder:   deps.Geocoder,
		Maps:       deps.Maps,
		Defaults:   deps.Defaults,
	}

	mux.HandleFunc("/health", handlers.Health(len(deps.Stations)))
	mux.HandleFunc("/stations", stationHandler.List)
	mux.HandleFunc("/plan", planHandler.Plan)

	return loggingMiddleware(mux)
}
