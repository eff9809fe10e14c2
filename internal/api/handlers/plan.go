package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geocode"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
	"fuel-route-service/internal/stations"
)

// PlanDefaults are applied when a request omits a tunable.
type PlanDefaults struct {
	RangeMiles         float64
	MPG                float64
	StationRadiusMiles float64
	GeocodeBudget      int
}

type PlanHandler struct {
	Stations   []*domain.Station
	Broker     *geocode.Broker
	Directions ports.DirectionsProvider
	Geocoder   ports.Geocoder
	Maps       ports.StaticMapBuilder
	Defaults   PlanDefaults
}

// Plan computes a fuel plan for a start/end pair: fetch the route, filter
// the station dataset to the route's bounding box, select stops, and
// accumulate costs.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	ctx := r.Context()

	start, err := parseLocation(ctx, req.Start, h.Geocoder)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "start: "+err.Error())
		return
	}
	end, err := parseLocation(ctx, req.End, h.Geocoder)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "end: "+err.Error())
		return
	}

	params := services.PlanParams{
		RangeMiles:            req.RangeMiles,
		MPG:                   req.MPG,
		StationRadiusMiles:    req.StationRadiusMiles,
		AllowStationGeocoding: req.AllowStationGeocoding,
		UseReverseGeocoding:   req.UseReverseGeocoding,
		GeocodeBudget:         h.Defaults.GeocodeBudget,
	}
	if params.RangeMiles == 0 {
		params.RangeMiles = h.Defaults.RangeMiles
	}
	if params.MPG == 0 {
		params.MPG = h.Defaults.MPG
	}
	if params.StationRadiusMiles == 0 {
		params.StationRadiusMiles = h.Defaults.StationRadiusMiles
	}
	if req.GeocodeBudget != nil {
		params.GeocodeBudget = *req.GeocodeBudget
	}
	if params.RangeMiles <= 0 || params.MPG <= 0 || params.StationRadiusMiles <= 0 || params.GeocodeBudget < 0 {
		writeError(w, r, http.StatusBadRequest, "range_miles, mpg, and station_radius_miles must be positive; geocode_budget must be non-negative")
		return
	}

	defer obs.Time(ctx, "plan")(&err)

	route, err := h.Directions.Directions(ctx, start, end)
	if err != nil {
		log.Printf("req_id=%s directions failed: %v", obs.RequestID(ctx), err)
		writeError(w, r, http.StatusBadGateway, "directions provider unavailable")
		return
	}

	// The bbox margin is wider than the search radius so stations near the
	// corners of the box are never cut off.
	margin := params.StationRadiusMiles * 2
	catalog := stations.NewCatalog(stations.FilterByRouteBounds(h.Stations, route.Points, margin))

	planner := services.NewPlanner(catalog, h.Broker)
	plan, err := planner.Plan(ctx, route, params)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidParameter) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("req_id=%s plan failed: %v", obs.RequestID(ctx), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, buildPlanResponse(route, plan, h.mapURL(route, plan, start, end)))
}

func (h *PlanHandler) mapURL(route *domain.Route, plan *domain.FuelPlan, start, end domain.Coordinates) string {
	if h.Maps == nil {
		return ""
	}

	var stops []domain.Coordinates
	for _, s := range plan.Stops {
		if s.StationCoords != nil {
			stops = append(stops, *s.StationCoords)
		}
	}
	return h.Maps.StaticMapURL(route, stops, start, end)
}

func buildPlanResponse(route *domain.Route, plan *domain.FuelPlan, mapURL string) dto.PlanResponse {
	res := dto.PlanResponse{
		Route: dto.RouteResponse{
			DistanceMiles:   route.DistanceMiles,
			DurationMinutes: route.DurationMinutes,
			StaticMapURL:    mapURL,
		},
		FuelPlan: dto.FuelPlanResponse{
			Stops: make([]dto.StopResponse, 0, len(plan.Stops)),
			Summary: dto.SummaryResponse{
				TotalCost:     plan.TotalCost,
				GallonsNeeded: plan.TotalGallons,
				PricedGallons: plan.PricedGallons,
				Segments:      make([]dto.SegmentResponse, 0, len(plan.Legs)),
			},
		},
	}

	for _, s := range plan.Stops {
		stop := dto.StopResponse{
			MarkerMile: s.Marker.Mile,
			Tier:       s.Tier.String(),
			Note:       s.Note,
		}
		if s.Station != nil {
			stop.Location = &dto.CoordinatesResponse{Lat: s.Point.Lat, Lon: s.Point.Lon}
			stop.Station = stationResponse(s.Station)
			if s.StationCoords != nil {
				stop.Station.Coordinates = &dto.CoordinatesResponse{
					Lat: s.StationCoords.Lat, Lon: s.StationCoords.Lon,
				}
			}
		}
		res.FuelPlan.Stops = append(res.FuelPlan.Stops, stop)
	}

	for _, l := range plan.Legs {
		res.FuelPlan.Summary.Segments = append(res.FuelPlan.Summary.Segments, dto.SegmentResponse{
			FromMile:       l.FromMile,
			ToMile:         l.ToMile,
			Miles:          l.Miles,
			Gallons:        l.Gallons,
			PricePerGallon: l.PricePerGallon,
			Cost:           l.Cost,
		})
	}

	return res
}

func stationResponse(st *domain.Station) *dto.StationResponse {
	res := &dto.StationResponse{
		OPISID:         st.OPISID,
		Name:           st.Name,
		Address:        st.Address,
		City:           st.City,
		State:          st.State,
		PricePerGallon: st.PricePerGallon,
	}
	if st.Resolved() {
		res.Coordinates = &dto.CoordinatesResponse{Lat: st.Coordinates.Lat, Lon: st.Coordinates.Lon}
	}
	return res
}
