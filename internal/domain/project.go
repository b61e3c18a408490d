package domain

import "strconv"

// HeightColumn is the normalized name of the measured-height column. The
// table view and exports rewrite this cell to the rounded display form.
const HeightColumn = "statistics_height"

// excludedColumns lists the administrative ID and boolean flag columns that
// are dropped before display and export. The names are in normalized form
// (dots already rewritten, embedded spaces preserved). A listed column that
// is absent from a dataset is skipped silently: schema drift must not break
// rendering.
var excludedColumns = map[string]bool{
	"id":                                 true,
	"location_city_id":                   true,
	"location_country id":                true,
	"purposes_abandoned":                 true,
	"purposes_air traffic control tower": true,
	"purposes_belltower":                 true,
	"purposes_bridge":                    true,
	"purposes_casino":                    true,
	"purposes_commercial":                true,
	"purposes_education":                 true,
	"purposes_exhibition":                true,
	"purposes_government":                true,
	"purposes_hospital":                  true,
	"purposes_hotel":                     true,
	"purposes_industrial":                true,
	"purposes_library":                   true,
	"purposes_multiple":                  true,
	"purposes_museum":                    true,
	"purposes_observation":               true,
	"purposes_office":                    true,
	"purposes_other":                     true,
	"purposes_religious":                 true,
	"purposes_residential":               true,
	"purposes_retail":                    true,
	"purposes_serviced apartments":       true,
	"purposes_telecommunications":        true,
	"status_completed_is completed":      true,
	"status_started_is started":          true,
}

// Projection maps a dataset's column set to the subset shown to users.
type Projection struct {
	// Columns are the kept column names in dataset order.
	Columns []string

	indexes   []int // source field index per kept column
	heightIdx int   // position of HeightColumn within Columns, -1 if absent
}

// Project computes the display projection for a column set by removing the
// fixed exclusion list.
func Project(columns []string) Projection {
	p := Projection{heightIdx: -1}
	for i, name := range columns {
		if excludedColumns[name] {
			continue
		}
		if name == HeightColumn {
			p.heightIdx = len(p.Columns)
		}
		p.Columns = append(p.Columns, name)
		p.indexes = append(p.indexes, i)
	}
	return p
}

// Row projects a record's raw fields onto the kept columns. Fields beyond
// the record's row length project as empty strings.
func (p Projection) Row(s Skyscraper) []string {
	row := make([]string, len(p.Columns))
	for i, src := range p.indexes {
		if src < len(s.Fields) {
			row[i] = s.Fields[src]
		}
	}
	return row
}

// DisplayRow is Row with the height cell rewritten to the rounded whole-meter
// display form.
func (p Projection) DisplayRow(s Skyscraper) []string {
	row := p.Row(s)
	if p.heightIdx >= 0 {
		row[p.heightIdx] = strconv.Itoa(s.DisplayHeight())
	}
	return row
}
