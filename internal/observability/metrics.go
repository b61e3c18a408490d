package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	DatasetRecords     prometheus.Gauge
	DatasetUnknownYear prometheus.Gauge

	// View rendering metrics.
	RenderRequests  *prometheus.CounterVec   // label: view={table,map,stats,top_cities,trend}
	RenderDuration  *prometheus.HistogramVec // label: view
	EmptyRenders    *prometheus.CounterVec   // label: view
	FilteredRecords prometheus.Histogram

	// Export metrics.
	ExportsTotal *prometheus.CounterVec // label: format={csv,xlsx}
	ExportBytes  prometheus.Counter
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "skyline",
			Name:      "dataset_records",
			Help:      "Number of records in the loaded dataset.",
		}),
		DatasetUnknownYear: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "skyline",
			Name:      "dataset_unknown_year_records",
			Help:      "Records whose completion year is unknown and therefore never filterable.",
		}),
		RenderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skyline",
			Name:      "render_requests_total",
			Help:      "View renders by view name.",
		}, []string{"view"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "skyline",
			Name:      "render_duration_seconds",
			Help:      "Time spent filtering and building one view payload.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"view"}),
		EmptyRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skyline",
			Name:      "empty_renders_total",
			Help:      "Renders whose filtered subset was empty, by view name.",
		}, []string{"view"}),
		FilteredRecords: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "skyline",
			Name:      "filtered_records",
			Help:      "Size of the filtered subset per render.",
			Buckets:   []float64{1, 10, 50, 100, 500, 1000, 2500, 5000, 10000},
		}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skyline",
			Name:      "exports_total",
			Help:      "Download exports by file format.",
		}, []string{"format"}),
		ExportBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skyline",
			Name:      "export_bytes_total",
			Help:      "Total bytes written across all exports.",
		}),
	}

	prometheus.MustRegister(
		m.DatasetRecords,
		m.DatasetUnknownYear,
		m.RenderRequests,
		m.RenderDuration,
		m.EmptyRenders,
		m.FilteredRecords,
		m.ExportsTotal,
		m.ExportBytes,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DatasetRecords:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "skyline", Name: "dataset_records"}),
		DatasetUnknownYear: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "skyline", Name: "dataset_unknown_year_records"}),
		RenderRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "skyline", Name: "render_requests_total"}, []string{"view"}),
		RenderDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "skyline", Name: "render_duration_seconds"}, []string{"view"}),
		EmptyRenders:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "skyline", Name: "empty_renders_total"}, []string{"view"}),
		FilteredRecords:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "skyline", Name: "filtered_records"}),
		ExportsTotal:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "skyline", Name: "exports_total"}, []string{"format"}),
		ExportBytes:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "skyline", Name: "export_bytes_total"}),
	}
}
