package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/palegrove/skyline-explorer/internal/domain"
)

// Normalized names of the columns the loader maps onto typed record fields.
// Everything else survives only as raw row text.
const (
	idColumn        = "id"
	nameColumn      = "name"
	cityColumn      = "location_city"
	countryColumn   = "location_country"
	latitudeColumn  = "location_latitude"
	longitudeColumn = "location_longitude"
	yearColumn      = "status_completed_year"
)

// RequiredColumns must all be present after header normalization; the
// dashboard cannot filter or render without them.
var RequiredColumns = []string{nameColumn, cityColumn, domain.HeightColumn, yearColumn}

// Load reads the skyscraper CSV at path into an immutable dataset. It is
// called exactly once at startup; every view renders from the returned
// snapshot afterwards.
//
// Header names are normalized (dots rewritten to underscores, surrounding
// whitespace removed) before any column lookup. Rows shorter than the header
// are padded with empty cells and longer rows are truncated, so a ragged file
// still loads. Value sentinels are resolved here and nowhere else: a blank
// city becomes domain.UnknownCity, a zero or unparsable completion year
// becomes a nil year, and a missing height parses as the zero placeholder.
func Load(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read dataset: %s has no header row", path)
	}

	columns := normalizeHeader(rows[0])
	colIdx := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := colIdx[name]; !dup {
			colIdx[name] = i
		}
	}
	for _, name := range RequiredColumns {
		if _, ok := colIdx[name]; !ok {
			return nil, fmt.Errorf("read dataset: missing required column %q", name)
		}
	}

	_, hasLat := colIdx[latitudeColumn]
	_, hasLon := colIdx[longitudeColumn]

	records := make([]domain.Skyscraper, 0, len(rows)-1)
	for i, row := range rows[1:] {
		records = append(records, buildRecord(row, columns, colIdx, i))
	}

	return &domain.Dataset{
		Source:               filepath.Base(path),
		Columns:              columns,
		Records:              records,
		LoadedAt:             domain.Now(),
		HasCoordinateColumns: hasLat && hasLon,
	}, nil
}

// buildRecord maps one data row onto a typed record. ordinal is the
// zero-based data row number, used as a fallback ID.
func buildRecord(row []string, columns []string, colIdx map[string]int, ordinal int) domain.Skyscraper {
	fields := normalizeRow(row, len(columns))
	get := func(col string) string {
		i, ok := colIdx[col]
		if !ok {
			return ""
		}
		return fields[i]
	}

	s := domain.Skyscraper{
		ID:      get(idColumn),
		Name:    get(nameColumn),
		City:    get(cityColumn),
		Country: get(countryColumn),
		HeightM: parseHeight(get(domain.HeightColumn)),
		Fields:  fields,
	}
	if s.ID == "" {
		s.ID = strconv.Itoa(ordinal + 1)
	}
	if s.City == "" {
		s.City = domain.UnknownCity
		if i, ok := colIdx[cityColumn]; ok {
			fields[i] = domain.UnknownCity
		}
	}
	s.CompletedYear = parseYear(get(yearColumn))
	s.Latitude = parseCoordinate(get(latitudeColumn))
	s.Longitude = parseCoordinate(get(longitudeColumn))
	return s
}

// normalizeHeader rewrites dotted source column names to underscore form.
// Embedded spaces are part of the name and stay untouched.
func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.ReplaceAll(strings.TrimSpace(name), ".", "_")
	}
	return columns
}

// normalizeRow trims each cell and reshapes the row to the header width.
func normalizeRow(row []string, width int) []string {
	fields := make([]string, width)
	for i := 0; i < width && i < len(row); i++ {
		fields[i] = strings.TrimSpace(row[i])
	}
	return fields
}

// parseYear resolves the completion-year cell. The source uses year zero for
// buildings whose completion date was never surveyed; that sentinel and any
// unparsable value map to an unknown year.
func parseYear(value string) *int {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	year := int(f)
	if year <= 0 {
		return nil
	}
	return &year
}

// parseHeight resolves the measured-height cell. Blank and unparsable cells
// collapse to the zero placeholder height.
func parseHeight(value string) float64 {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// parseCoordinate resolves an optional coordinate cell to nil when absent
// or malformed.
func parseCoordinate(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}
