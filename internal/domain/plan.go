package domain

// StopTier records which selection policy level produced a stop decision.
// Lower tiers are more precise; later tiers trade precision for always
// producing a decision.
type StopTier int

const (
	// TierRadius is the primary selection: cheapest station within the
	// search radius of the marker.
	TierRadius StopTier = iota
	// TierInState is the cheapest resolved station in the marker's state,
	// regardless of distance.
	TierInState
	// TierNearest is the resolved station closest to the marker, regardless
	// of price or state.
	TierNearest
	// TierCheapest is the cheapest-priced station overall with no usable
	// coordinates anywhere; the stop location is approximate.
	TierCheapest
	// TierNone means the catalog had no stations at all.
	TierNone
)

func (t StopTier) String() string {
	switch t {
	case TierRadius:
		return "radius"
	case TierInState:
		return "in_state"
	case TierNearest:
		return "nearest"
	case TierCheapest:
		return "cheapest"
	case TierNone:
		return "none"
	default:
		return "unknown"
	}
}

// StopDecision is the outcome of evaluating one marker. Station is nil
// only when the catalog is empty. StationCoords holds the station's
// coordinates as resolved during selection; it is nil when they are
// unknown (the station record itself is shared and never mutated by a
// run). Immutable once produced.
type StopDecision struct {
	Marker        Marker
	Point         Coordinates
	Station       *Station
	StationCoords *Coordinates
	Tier          StopTier
	Note          string
}

// Price returns the selected station's price per gallon, if known.
func (d StopDecision) Price() (float64, bool) {
	if d.Station == nil {
		return 0, false
	}
	return d.Station.PricePerGallon, true
}

// LegCost is the fuel usage and cost for one route segment between two
// consecutive stops (or a stop and a route endpoint).
type LegCost struct {
	FromMile       float64
	ToMile         float64
	Miles          float64
	Gallons        float64
	PricePerGallon *float64
	Cost           *float64
}

// FuelPlan is the terminal output of a planning run: the ordered stop
// decisions plus aggregated totals. TotalCost is nil when no leg had a
// known price; legs with unknown prices still contribute gallons.
type FuelPlan struct {
	Stops         []StopDecision
	Legs          []LegCost
	TotalGallons  float64
	PricedGallons float64
	TotalCost     *float64
}
