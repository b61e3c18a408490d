package views

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/palegrove/skyline-explorer/internal/domain"
	"github.com/palegrove/skyline-explorer/internal/export"
	"github.com/palegrove/skyline-explorer/internal/observability"
)

// View names used as metric labels.
const (
	viewTable     = "table"
	viewMap       = "map"
	viewStats     = "stats"
	viewTopCities = "top_cities"
	viewTrend     = "trend"
)

// Slider starting positions. The dataset's own bounds win when they are
// narrower than these.
const (
	defaultYearLo   = 1850
	defaultYearHi   = 2020
	defaultHeightLo = 0
	defaultHeightHi = 1609
)

// ErrNoData is returned by the export methods when the filtered subset is
// empty; there is nothing to download.
var ErrNoData = errors.New("no data available for download")

// Renderer builds every dashboard view from the loaded dataset snapshot.
// The snapshot is never mutated after load, so all methods are safe for
// concurrent use without locking.
type Renderer struct {
	dataset    *domain.Dataset
	projection domain.Projection
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Renderer over a loaded dataset.
func New(dataset *domain.Dataset, logger *slog.Logger, metrics *observability.Metrics) *Renderer {
	return &Renderer{
		dataset:    dataset,
		projection: domain.Project(dataset.Columns),
		logger:     logger,
		metrics:    metrics,
	}
}

// LoadedAt reports when the dataset snapshot was built. Every view payload
// derives from that moment, so it doubles as the Last-Modified stamp.
func (r *Renderer) LoadedAt() time.Time {
	return r.dataset.LoadedAt
}

// CheckReadiness reports whether a dataset snapshot is available to render
// from, satisfying the HTTP server's readiness probe.
func (r *Renderer) CheckReadiness(_ context.Context) error {
	if r.dataset == nil || r.dataset.LoadedAt.IsZero() {
		return errors.New("dataset not loaded")
	}
	if r.dataset.Len() == 0 {
		return errors.New("dataset is empty")
	}
	return nil
}

// DefaultFilter returns the filter that admits every filterable record: the
// dataset's own year and height bounds with no city selection. Request
// parameters override individual fields of this filter.
func (r *Renderer) DefaultFilter() domain.Filter {
	minYear, maxYear, _ := r.dataset.YearBounds()
	minH, maxH, _ := r.dataset.HeightBounds()
	return domain.Filter{
		YearMin:   minYear,
		YearMax:   maxYear,
		HeightMin: minH,
		HeightMax: maxH,
	}
}

// YearRange describes the year slider: dataset bounds plus starting handle
// positions.
type YearRange struct {
	Min        int `json:"min"`
	Max        int `json:"max"`
	DefaultMin int `json:"default_min"`
	DefaultMax int `json:"default_max"`
}

// HeightRange describes the height slider.
type HeightRange struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	DefaultMin float64 `json:"default_min"`
	DefaultMax float64 `json:"default_max"`
}

// MetaPayload carries everything the page needs to draw the sidebar
// controls before the first filtered render.
type MetaPayload struct {
	Source       string      `json:"source"`
	LoadedAt     time.Time   `json:"loaded_at"`
	TotalRecords int         `json:"total_records"`
	UnknownYears int         `json:"unknown_year_records"`
	Years        YearRange   `json:"years"`
	Heights      HeightRange `json:"heights"`
	Cities       []string    `json:"cities"`
	MapAvailable bool        `json:"map_available"`
}

// Meta builds the control-panel payload from the dataset alone; no filter is
// involved.
func (r *Renderer) Meta() MetaPayload {
	meta := MetaPayload{
		Source:       r.dataset.Source,
		LoadedAt:     r.dataset.LoadedAt,
		TotalRecords: r.dataset.Len(),
		UnknownYears: r.dataset.UnknownYearCount(),
		Cities:       r.dataset.CityList(),
		MapAvailable: r.dataset.HasCoordinateColumns,
	}

	if minYear, maxYear, ok := r.dataset.YearBounds(); ok {
		meta.Years = YearRange{
			Min:        minYear,
			Max:        maxYear,
			DefaultMin: clampInt(defaultYearLo, minYear, maxYear),
			DefaultMax: clampInt(defaultYearHi, minYear, maxYear),
		}
	}
	if minH, maxH, ok := r.dataset.HeightBounds(); ok {
		meta.Heights = HeightRange{
			Min:        minH,
			Max:        maxH,
			DefaultMin: clampFloat(defaultHeightLo, minH, maxH),
			DefaultMax: clampFloat(defaultHeightHi, minH, maxH),
		}
	}
	return meta
}

// TablePayload is the filtered data table: kept columns plus one display row
// per matching record.
type TablePayload struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

// Table renders the data table view.
func (r *Renderer) Table(f domain.Filter) TablePayload {
	start := time.Now()
	subset := f.Apply(r.dataset.Records)

	rows := make([][]string, 0, len(subset))
	for _, s := range subset {
		rows = append(rows, r.projection.DisplayRow(s))
	}

	r.observe(viewTable, start, len(subset))
	return TablePayload{Columns: r.projection.Columns, Rows: rows, Total: len(subset)}
}

// Stats renders the summary statistics view.
func (r *Renderer) Stats(f domain.Filter) domain.Summary {
	start := time.Now()
	subset := f.Apply(r.dataset.Records)
	summary := domain.Summarize(subset)
	r.observe(viewStats, start, len(subset))
	return summary
}

// TopCities renders the city ranking view.
func (r *Renderer) TopCities(f domain.Filter) []domain.CityCount {
	start := time.Now()
	subset := f.Apply(r.dataset.Records)
	entries := domain.TopCities(subset)
	r.observe(viewTopCities, start, len(subset))
	return entries
}

// Trend renders the completions-per-year view.
func (r *Renderer) Trend(f domain.Filter) []domain.YearCount {
	start := time.Now()
	subset := f.Apply(r.dataset.Records)
	series := domain.Trend(subset)
	r.observe(viewTrend, start, len(subset))
	return series
}

// Map renders the 3D map view for one city of the filtered subset.
func (r *Renderer) Map(f domain.Filter, city string) domain.MapPayload {
	start := time.Now()
	subset := f.Apply(r.dataset.Records)
	payload := domain.MapView(subset, r.dataset.HasCoordinateColumns, city)
	r.observe(viewMap, start, len(subset))
	return payload
}

// ExportCSV encodes the filtered subset for download. An empty subset
// returns ErrNoData instead of an empty file.
func (r *Renderer) ExportCSV(f domain.Filter) ([]byte, error) {
	subset := f.Apply(r.dataset.Records)
	if len(subset) == 0 {
		return nil, ErrNoData
	}
	data, err := export.CSV(r.projection, subset)
	if err != nil {
		return nil, err
	}
	r.observeExport("csv", len(subset), len(data))
	return data, nil
}

// ExportXLSX encodes the filtered subset as a workbook for download.
func (r *Renderer) ExportXLSX(f domain.Filter) ([]byte, error) {
	subset := f.Apply(r.dataset.Records)
	if len(subset) == 0 {
		return nil, ErrNoData
	}
	data, err := export.XLSX(r.projection, subset)
	if err != nil {
		return nil, err
	}
	r.observeExport("xlsx", len(subset), len(data))
	return data, nil
}

func (r *Renderer) observe(view string, start time.Time, matched int) {
	r.metrics.RenderRequests.WithLabelValues(view).Inc()
	r.metrics.RenderDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
	r.metrics.FilteredRecords.Observe(float64(matched))
	if matched == 0 {
		r.metrics.EmptyRenders.WithLabelValues(view).Inc()
	}
	r.logger.Debug("view rendered", "view", view, "records", matched)
}

func (r *Renderer) observeExport(format string, records, bytes int) {
	r.metrics.ExportsTotal.WithLabelValues(format).Inc()
	r.metrics.ExportBytes.Add(float64(bytes))
	r.logger.Info("export generated", "format", format, "records", records, "bytes", bytes)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
