package domain

import (
	"math"
	"time"
)

// UnknownCity is substituted for records whose source row has no city value.
const UnknownCity = "Unknown"

// Skyscraper is one normalized dataset record. Optional source values are
// pointer-typed: nil means the survey did not report them.
type Skyscraper struct {
	ID      string
	Name    string
	City    string // never empty after normalization; UnknownCity when absent
	Country string

	Latitude  *float64
	Longitude *float64

	// HeightM is the surveyed height in meters as read from the file.
	// Zero marks a placeholder row with no measured height.
	HeightM float64

	// CompletedYear is nil when the survey recorded the year-zero sentinel
	// or no year at all.
	CompletedYear *int

	// Fields holds the full normalized row, parallel to Dataset.Columns, so
	// the table view and exports can reproduce columns the typed fields do
	// not model.
	Fields []string
}

// DisplayHeight returns the height rounded to the nearest whole meter, the
// only form in which heights are ever shown.
func (s Skyscraper) DisplayHeight() int {
	return int(math.Round(s.HeightM))
}

// HasCoordinates reports whether both latitude and longitude are known.
func (s Skyscraper) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Dataset is the immutable in-memory table built once at startup. All view
// rendering reads from it concurrently without locking; nothing writes to it
// after construction.
type Dataset struct {
	Source   string // base name of the file the records were loaded from
	Columns  []string
	Records  []Skyscraper
	LoadedAt time.Time

	// HasCoordinateColumns is false when the source file carries no
	// latitude/longitude columns at all; the map view degrades to a
	// "no data available" payload in that case.
	HasCoordinateColumns bool
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// CityList returns the unique city names in first-encountered order. This is
// the option set for the sidebar multiselect.
func (d *Dataset) CityList() []string {
	return uniqueCities(d.Records)
}

// YearBounds returns the minimum and maximum known completed years.
// ok is false when no record has a known year.
func (d *Dataset) YearBounds() (minYear, maxYear int, ok bool) {
	for _, r := range d.Records {
		if r.CompletedYear == nil {
			continue
		}
		y := *r.CompletedYear
		if !ok || y < minYear {
			minYear = y
		}
		if !ok || y > maxYear {
			maxYear = y
		}
		ok = true
	}
	return minYear, maxYear, ok
}

// HeightBounds returns the minimum and maximum height over all records.
// ok is false for an empty dataset.
func (d *Dataset) HeightBounds() (minH, maxH float64, ok bool) {
	for _, r := range d.Records {
		if !ok || r.HeightM < minH {
			minH = r.HeightM
		}
		if !ok || r.HeightM > maxH {
			maxH = r.HeightM
		}
		ok = true
	}
	return minH, maxH, ok
}

// UnknownYearCount returns how many records have no known completed year.
func (d *Dataset) UnknownYearCount() int {
	n := 0
	for _, r := range d.Records {
		if r.CompletedYear == nil {
			n++
		}
	}
	return n
}

// uniqueCities collects city names in first-encountered order.
func uniqueCities(records []Skyscraper) []string {
	seen := make(map[string]bool, len(records))
	var cities []string
	for _, r := range records {
		if seen[r.City] {
			continue
		}
		seen[r.City] = true
		cities = append(cities, r.City)
	}
	return cities
}
