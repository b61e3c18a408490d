package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/palegrove/skyline-explorer/internal/domain"
)

const (
	dataSheet    = "Data"
	summarySheet = "Summary"
)

// XLSX encodes the projected subset as a workbook: a Data sheet holding the
// same header and display rows as the CSV export, plus a Summary sheet with
// the height statistics of the subset.
func XLSX(projection domain.Projection, records []domain.Skyscraper) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", dataSheet)

	for i, name := range projection.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("map header cell: %w", err)
		}
		f.SetCellValue(dataSheet, cell, name)
	}
	for rowIdx, r := range records {
		for colIdx, value := range projection.DisplayRow(r) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("map data cell: %w", err)
			}
			f.SetCellValue(dataSheet, cell, value)
		}
	}

	if err := writeSummarySheet(f, domain.Summarize(records)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, summary domain.Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}

	f.SetCellValue(summarySheet, "A1", "Metric")
	f.SetCellValue(summarySheet, "B1", "Value")

	rows := []struct {
		metric string
		value  *float64
	}{
		{"Tallest (m)", summary.Max},
		{"Shortest (m)", summary.Min},
		{"Mean height (m)", summary.Mean},
		{"Median height (m)", summary.Median},
	}

	f.SetCellValue(summarySheet, "A2", "Measured skyscrapers")
	f.SetCellValue(summarySheet, "B2", summary.Count)
	for i, row := range rows {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", i+3), row.metric)
		if row.value != nil {
			f.SetCellValue(summarySheet, fmt.Sprintf("B%d", i+3), *row.value)
		}
	}
	return nil
}
