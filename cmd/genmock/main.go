// Command genmock writes a deterministic skyscraper dataset fixture with the
// same dotted column schema as the real survey export. The generated file
// includes the awkward rows the loader and views have to cope with: a missing
// city, a completed-year zero sentinel, a zero-height placeholder, and
// records without coordinates.
//
// Usage:
//
//	go run ./cmd/genmock -out testdata/skyscrapers.csv -rows 48
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

var header = []string{
	"id", "name", "location.city", "location.country id",
	"location.latitude", "location.longitude",
	"statistics.height", "status.completed.year",
	"purposes.hotel", "purposes.office",
}

type cityDef struct {
	name    string
	country string
	lat     float64
	lon     float64
}

var cities = []cityDef{
	{name: "Dubai", country: "AE", lat: 25.1972, lon: 55.2744},
	{name: "Shanghai", country: "CN", lat: 31.2336, lon: 121.5055},
	{name: "Chicago", country: "US", lat: 41.8789, lon: -87.6359},
	{name: "New York City", country: "US", lat: 40.7484, lon: -73.9857},
	{name: "Shenzhen", country: "CN", lat: 22.5333, lon: 114.0556},
	{name: "Kuala Lumpur", country: "MY", lat: 3.1578, lon: 101.7119},
}

var kinds = []string{
	"Meridian Tower", "Harbor Spire", "Summit Plaza", "Crown Centre", "Azure Gate",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "skyscrapers.csv", "output path for the fixture CSV")
	rows := flag.Int("rows", 48, "number of data rows to generate")
	flag.Parse()

	if *rows < 1 {
		return fmt.Errorf("-rows must be at least 1, got %d", *rows)
	}

	records := make([][]string, 0, *rows+1)
	records = append(records, header)

	var missingCity, unknownYear, zeroHeight, missingCoords int
	for i := 0; i < *rows; i++ {
		row, edge := buildRow(i)
		records = append(records, row)
		missingCity += edge.missingCity
		unknownYear += edge.unknownYear
		zeroHeight += edge.zeroHeight
		missingCoords += edge.missingCoords
	}

	if err := writeCSV(*out, records); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}

	log.Printf("wrote %s: %d rows", *out, *rows)
	log.Printf("edge rows: %d missing city, %d unknown year, %d zero height, %d missing coordinates",
		missingCity, unknownYear, zeroHeight, missingCoords)
	return nil
}

// edgeTally marks which sentinel cases a generated row carries.
type edgeTally struct {
	missingCity   int
	unknownYear   int
	zeroHeight    int
	missingCoords int
}

// buildRow derives every cell from the row index alone, so the fixture is
// identical across runs. The modular offsets are chosen so the default 48
// rows hit every edge case at least once without any edge dominating.
func buildRow(i int) ([]string, edgeTally) {
	var edge edgeTally
	city := cities[i%len(cities)]

	cityCell := city.name
	if i%11 == 5 {
		cityCell = ""
		edge.missingCity = 1
	}

	year := 1900 + (i*13)%120
	if i%13 == 3 {
		year = 0
		edge.unknownYear = 1
	}

	height := 120 + float64((i*37)%680)
	if i%3 == 1 {
		height += 0.5
	}
	if i%17 == 8 {
		height = 0
		edge.zeroHeight = 1
	}

	latCell := strconv.FormatFloat(city.lat+float64(i%10)*0.002, 'f', 4, 64)
	lonCell := strconv.FormatFloat(city.lon+float64(i%10)*0.003, 'f', 4, 64)
	if i%9 == 7 {
		latCell, lonCell = "", ""
		edge.missingCoords = 1
	}

	row := []string{
		strconv.Itoa(i + 1),
		fmt.Sprintf("%s %d", kinds[i%len(kinds)], i+1),
		cityCell,
		city.country,
		latCell,
		lonCell,
		strconv.FormatFloat(height, 'f', -1, 64),
		strconv.Itoa(year),
		boolCell(i%4 == 0),
		boolCell(i%3 == 0),
	}
	return row, edge
}

func boolCell(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func writeCSV(path string, records [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close() //nolint:errcheck // write error takes precedence
		return err
	}
	return f.Close()
}
