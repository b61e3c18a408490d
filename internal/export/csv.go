package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/palegrove/skyline-explorer/internal/domain"
)

// Download filenames offered by the dashboard.
const (
	CSVFilename  = "filtered_skyscrapers.csv"
	XLSXFilename = "filtered_skyscrapers.xlsx"
)

// CSV encodes the projected subset: one header row of kept column names,
// then one display row per record. No index column is written; the file
// round-trips through the same projection rules the table view uses.
func CSV(projection domain.Projection, records []domain.Skyscraper) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(projection.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(projection.DisplayRow(r)); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
