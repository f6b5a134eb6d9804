package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the map service.
type Metrics struct {
	RenderPasses      prometheus.Counter
	RenderErrors      prometheus.Counter
	RenderDuration    prometheus.Histogram
	FeaturesRendered  prometheus.Gauge
	FeaturesNoData    prometheus.Gauge
	DegenerateRecords prometheus.Counter
	SelectedYear      prometheus.Gauge

	// Dataset load metrics.
	DatasetLoadDuration *prometheus.HistogramVec // labels: source={geometry,election}
	DatasetSize         *prometheus.GaugeVec     // labels: source={geometry,election}
	LayerPublished      *prometheus.CounterVec   // labels: sink={snapshot,kafka}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RenderPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "election_map",
			Name:      "render_passes_total",
			Help:      "Total completed render passes.",
		}),
		RenderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "election_map",
			Name:      "render_errors_total",
			Help:      "Total render passes where a renderer failed.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "election_map",
			Name:      "render_duration_seconds",
			Help:      "Duration of a full render pass: margins, join, and renderer handoff.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		FeaturesRendered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "election_map",
			Name:      "features_rendered",
			Help:      "Features in the most recent render pass.",
		}),
		FeaturesNoData: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "election_map",
			Name:      "features_no_data",
			Help:      "Features without a result in the most recent render pass.",
		}),
		DegenerateRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "election_map",
			Name:      "degenerate_records_total",
			Help:      "Election records rejected for a zero vote total.",
		}),
		SelectedYear: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "election_map",
			Name:      "selected_year",
			Help:      "Year of the most recent render pass.",
		}),
		DatasetLoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "election_map",
			Name:      "dataset_load_duration_seconds",
			Help:      "Time to fetch and decode each dataset.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		DatasetSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "election_map",
			Name:      "dataset_size",
			Help:      "Features or records loaded per dataset.",
		}, []string{"source"}),
		LayerPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "election_map",
			Name:      "layer_published_total",
			Help:      "Layers handed to each renderer sink.",
		}, []string{"sink"}),
	}

	prometheus.MustRegister(
		m.RenderPasses,
		m.RenderErrors,
		m.RenderDuration,
		m.FeaturesRendered,
		m.FeaturesNoData,
		m.DegenerateRecords,
		m.SelectedYear,
		m.DatasetLoadDuration,
		m.DatasetSize,
		m.LayerPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}

// NewUnregisteredMetrics creates Metrics that are never exported. One-shot
// tools use it to drive instrumented code without a /metrics endpoint.
func NewUnregisteredMetrics() *Metrics {
	return &Metrics{
		RenderPasses:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "election_map", Name: "render_passes_total"}),
		RenderErrors:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "election_map", Name: "render_errors_total"}),
		RenderDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "election_map", Name: "render_duration_seconds"}),
		FeaturesRendered:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "election_map", Name: "features_rendered"}),
		FeaturesNoData:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "election_map", Name: "features_no_data"}),
		DegenerateRecords:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "election_map", Name: "degenerate_records_total"}),
		SelectedYear:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "election_map", Name: "selected_year"}),
		DatasetLoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "election_map", Name: "dataset_load_duration_seconds"}, []string{"source"}),
		DatasetSize:         prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "election_map", Name: "dataset_size"}, []string{"source"}),
		LayerPublished:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "election_map", Name: "layer_published_total"}, []string{"sink"}),
	}
}
