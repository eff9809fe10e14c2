package stations

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleCSV = `OPIS Truckstop ID,Truckstop Name,Address,City,State,Rack ID,Retail Price
100,PILOT #1,I-80 EXIT 1,Big Springs,NE,305,3.049
200,LOVES #2,I-70 EXIT 5,Topeka,KS,128,2.899
100,PILOT #1,I-80 EXIT 1,Big Springs,NE,305,2.999
300,TA EXPRESS,US-30 & MAIN,Kearney,NE,305,not-a-price
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fuel-prices.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write sample csv: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	sts, err := LoadCSV(writeSample(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Duplicate Pilot row collapses to one; the unparseable-price row drops.
	if len(sts) != 2 {
		t.Fatalf("loaded %d stations, want 2", len(sts))
	}

	if sts[0].Name != "PILOT #1" {
		t.Fatalf("first station = %q, want dataset order preserved", sts[0].Name)
	}
	if sts[0].PricePerGallon != 2.999 {
		t.Fatalf("dedupe kept price %.3f, want the lower 2.999", sts[0].PricePerGallon)
	}

	if sts[1].State != "KS" || sts[1].PricePerGallon != 2.899 {
		t.Fatalf("second station = %+v", sts[1])
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadCSVShortRows(t *testing.T) {
	// Price first, so a truncated row can still carry a parseable price
	// while missing later required columns. Short rows are skipped whole,
	// never indexed.
	const reordered = `Retail Price,OPIS Truckstop ID,Truckstop Name,Address,City,State,Rack ID
3.049,100,PILOT #1,I-80 EXIT 1,Big Springs,NE,305
2.899,200
2.799,300,LOVES #2,I-70 EXIT 5,Topeka,KS,128
`
	path := filepath.Join(t.TempDir(), "ragged.csv")
	if err := os.WriteFile(path, []byte(reordered), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	sts, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sts) != 2 {
		t.Fatalf("loaded %d stations, want 2 (ragged row dropped)", len(sts))
	}
	if sts[0].OPISID != "100" || sts[1].OPISID != "300" {
		t.Fatalf("stations = %q, %q", sts[0].OPISID, sts[1].OPISID)
	}
}

func TestLoadCSVMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("Name,Price\nX,1.0\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if _, err := LoadCSV(path); err == nil {
		t.Fatal("expected error for missing columns")
	}
}
