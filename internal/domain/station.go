package domain

import "fmt"

// Station is a single fuel stop candidate from the price dataset.
//
// Coordinates start nil for most rows and may only be populated before
// the record is shared; station slices are read concurrently by planning
// runs, so the whole record is read-only after load. Coordinates resolved
// later live in the geocode broker, not here.
type Station struct {
	OPISID         string
	Name           string
	Address        string
	City           string
	State          string
	RackID         string
	PricePerGallon float64
	Coordinates    *Coordinates
}

// Key returns the stable identity used for deduplication and as the
// coordinate cache key. It must not change across runs or cached entries
// would be orphaned.
func (s *Station) Key() string {
	return fmt.Sprintf("%s-%s-%s-%s", s.OPISID, s.Address, s.City, s.State)
}

// Resolved reports whether the station has known coordinates.
func (s *Station) Resolved() bool { return s.Coordinates != nil }
