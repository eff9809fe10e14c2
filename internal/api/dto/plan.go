package dto

import "encoding/json"

// PlanRequest accepts start/end as raw JSON so callers can send a
// "lat,lon" string, a [lat, lon] pair, a {"lat":..,"lon":..} object, or a
// free-form address to geocode.
type PlanRequest struct {
	Start                 json.RawMessage `json:"start"`
	End                   json.RawMessage `json:"end"`
	RangeMiles            float64         `json:"range_miles"`
	MPG                   float64         `json:"mpg"`
	StationRadiusMiles    float64         `json:"station_radius_miles"`
	AllowStationGeocoding bool            `json:"allow_station_geocoding"`
	UseReverseGeocoding   bool            `json:"use_reverse_geocoding"`
	GeocodeBudget         *int            `json:"geocode_budget"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type StationResponse struct {
	OPISID         string               `json:"opis_id"`
	Name           string               `json:"name"`
	Address        string               `json:"address"`
	City           string               `json:"city"`
	State          string               `json:"state"`
	PricePerGallon float64              `json:"price_per_gallon"`
	Coordinates    *CoordinatesResponse `json:"coordinates,omitempty"`
}

type StopResponse struct {
	MarkerMile float64              `json:"marker_mile"`
	Tier       string               `json:"tier"`
	Note       string               `json:"note,omitempty"`
	Location   *CoordinatesResponse `json:"location,omitempty"`
	Station    *StationResponse     `json:"station,omitempty"`
}

type SegmentResponse struct {
	FromMile       float64  `json:"from_mile"`
	ToMile         float64  `json:"to_mile"`
	Miles          float64  `json:"miles"`
	Gallons        float64  `json:"gallons"`
	PricePerGallon *float64 `json:"price_per_gallon"`
	Cost           *float64 `json:"cost"`
}

type SummaryResponse struct {
	TotalCost     *float64          `json:"total_cost"`
	GallonsNeeded float64           `json:"gallons_needed"`
	PricedGallons float64           `json:"priced_gallons"`
	Segments      []SegmentResponse `json:"segments"`
}

type RouteResponse struct {
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes float64 `json:"duration_minutes"`
	StaticMapURL    string  `json:"static_map_url,omitempty"`
}

type FuelPlanResponse struct {
	Stops   []StopResponse  `json:"stops"`
	Summary SummaryResponse `json:"summary"`
}

type PlanResponse struct {
	Route    RouteResponse    `json:"route"`
	FuelPlan FuelPlanResponse `json:"fuel_plan"`
}

type ListStationsResponse struct {
	Stations []StationResponse `json:"stations"`
}
