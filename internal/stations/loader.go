// Package stations loads the fuel-price dataset and serves candidate
// lookups for the stop selector.
package stations

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fuel-route-service/internal/domain"
)

// Column headers of the OPIS fuel-price export.
const (
	colOPISID  = "OPIS Truckstop ID"
	colName    = "Truckstop Name"
	colAddress = "Address"
	colCity    = "City"
	colState   = "State"
	colRackID  = "Rack ID"
	colPrice   = "Retail Price"
)

// LoadCSV reads the fuel-price dataset and returns deduplicated stations.
//
// Rows without a parseable price are dropped. Duplicate rows (same station
// identity) keep the lowest price. A missing or malformed file is fatal to
// the caller: there is nothing to plan without prices.
func LoadCSV(path string) ([]*domain.Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load stations: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("load stations: read header of %q: %w", path, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	maxCol := 0
	for _, want := range []string{colOPISID, colName, colAddress, colCity, colState, colRackID, colPrice} {
		i, ok := col[want]
		if !ok {
			return nil, fmt.Errorf("load stations: %q missing column %q", path, want)
		}
		if i > maxCol {
			maxCol = i
		}
	}

	byKey := make(map[string]*domain.Station)
	order := make([]string, 0, 1024)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load stations: read %q: %w", path, err)
		}
		// Ragged rows are skipped whole: indexing any required column
		// into a short row would panic.
		if len(row) <= maxCol {
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[col[colPrice]]), 64)
		if err != nil {
			continue
		}

		st := &domain.Station{
			OPISID:         strings.TrimSpace(row[col[colOPISID]]),
			Name:           strings.TrimSpace(row[col[colName]]),
			Address:        strings.TrimSpace(row[col[colAddress]]),
			City:           strings.TrimSpace(row[col[colCity]]),
			State:          strings.TrimSpace(row[col[colState]]),
			RackID:         strings.TrimSpace(row[col[colRackID]]),
			PricePerGallon: price,
		}

		key := st.Key()
		existing, ok := byKey[key]
		if !ok {
			byKey[key] = st
			order = append(order, key)
			continue
		}
		if price < existing.PricePerGallon {
			byKey[key] = st
		}
	}

	out := make([]*domain.Station, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out, nil
}
