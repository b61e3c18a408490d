// Command validate runs phased integrity checks over a skyscraper dataset
// CSV before it is handed to the dashboard: schema presence, row shape,
// value parseability, and sentinel statistics. Each phase prints PASS or
// FAIL; any failure exits non-zero.
//
// Usage:
//
//	go run ./cmd/validate -dataset skyscrapers.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/palegrove/skyline-explorer/internal/adapter/csvfile"
	"github.com/palegrove/skyline-explorer/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataset := flag.String("dataset", "skyscrapers.csv", "path to the dataset CSV to validate")
	flag.Parse()

	os.Exit(run(*dataset))
}

func run(path string) int {
	fmt.Println("=== Skyscraper Dataset Validation ===")
	fmt.Println()

	rows, err := loadRaw(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	header := normalize(rows[0])
	phases := []*phase{
		validateSchema(header),
		validateRowShape(header, rows[1:]),
		validateValues(header, rows[1:]),
		validateSentinels(path),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-40s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d data rows, %d columns\n", len(rows)-1, len(header))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadRaw(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row in %s", path)
	}
	return rows, nil
}

// normalize applies the loader's header rewrite so phases compare against
// the names the dashboard actually uses.
func normalize(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(strings.TrimSpace(c), ".", "_")
	}
	return out
}

// ── Phase 1: Schema ──
// The header must name every column the dashboard filters and renders on,
// exactly once.

func validateSchema(header []string) *phase {
	p := &phase{name: "Phase 1: Schema (required columns)"}

	idx := map[string]int{}
	for i, name := range header {
		if name == "" {
			p.errorf("column %d has an empty name", i+1)
			continue
		}
		if prev, ok := idx[name]; ok {
			p.errorf("column %q appears at positions %d and %d", name, prev+1, i+1)
			continue
		}
		idx[name] = i
	}
	for _, name := range csvfile.RequiredColumns {
		if _, ok := idx[name]; !ok {
			p.errorf("missing required column %q", name)
		}
	}
	return p
}

// ── Phase 2: Row Shape ──
// The loader pads and truncates ragged rows, so they load silently; this
// phase is where they get reported.

func validateRowShape(header []string, rows [][]string) *phase {
	p := &phase{name: "Phase 2: Row Shape"}
	if len(rows) == 0 {
		p.errorf("file has a header but no data rows")
		return p
	}
	for i, row := range rows {
		if len(row) != len(header) {
			p.errorf("line %d: %d cells, header has %d", i+2, len(row), len(header))
		}
	}
	return p
}

// ── Phase 3: Value Parseability ──
// Non-empty cells in the numeric columns must parse and sit in a plausible
// range. Empty cells are legitimate sentinels, counted in Phase 4.

func validateValues(header []string, rows [][]string) *phase {
	p := &phase{name: "Phase 3: Value Parseability"}

	idx := map[string]int{}
	for i, name := range header {
		idx[name] = i
	}

	for i, row := range rows {
		line := i + 2

		if v := cellVal(row, idx, domain.HeightColumn); v != "" {
			h, err := strconv.ParseFloat(v, 64)
			if err != nil {
				p.errorf("line %d: height %q is not numeric", line, v)
			} else if h < 0 {
				p.errorf("line %d: height %v is negative", line, h)
			}
		}

		if v := cellVal(row, idx, "status_completed_year"); v != "" {
			y, err := strconv.ParseFloat(v, 64)
			if err != nil {
				p.errorf("line %d: completed year %q is not numeric", line, v)
			} else if y < 0 || y > 2100 {
				p.errorf("line %d: completed year %v out of range", line, y)
			}
		}

		checkCoordinate(p, line, "latitude", cellVal(row, idx, "location_latitude"), 90)
		checkCoordinate(p, line, "longitude", cellVal(row, idx, "location_longitude"), 180)
	}
	return p
}

func cellVal(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func checkCoordinate(p *phase, line int, axis, v string, bound float64) {
	if v == "" {
		return
	}
	c, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errorf("line %d: %s %q is not numeric", line, axis, v)
		return
	}
	if c < -bound || c > bound {
		p.errorf("line %d: %s %v outside [-%v, %v]", line, axis, c, bound, bound)
	}
}

// ── Phase 4: Sentinel Statistics ──
// Runs the real loader and reports how many rows fall back to each sentinel,
// so a surprising jump is visible before the dashboard serves the file.

func validateSentinels(path string) *phase {
	p := &phase{name: "Phase 4: Sentinel Statistics"}

	ds, err := csvfile.Load(path)
	if err != nil {
		p.errorf("loader rejected the file: %v", err)
		return p
	}
	if ds.Len() == 0 {
		p.errorf("loader produced an empty dataset")
		return p
	}

	var unknownCity, zeroHeight, noCoords int
	for _, r := range ds.Records {
		if r.City == domain.UnknownCity {
			unknownCity++
		}
		if r.HeightM == 0 {
			zeroHeight++
		}
		if !r.HasCoordinates() {
			noCoords++
		}
	}

	fmt.Printf("  sentinels: %d unknown city, %d unknown year, %d zero height, %d missing coordinates\n",
		unknownCity, ds.UnknownYearCount(), zeroHeight, noCoords)

	if ds.UnknownYearCount() == ds.Len() {
		p.errorf("every record has an unknown completion year; the trend view would be empty")
	}
	return p
}
