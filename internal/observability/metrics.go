package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the tracker.
type Metrics struct {
	TrackerRunning prometheus.Gauge
	PositionTicks  prometheus.Counter

	ResolveDuration  prometheus.Histogram
	StationsVisited  prometheus.Gauge
	MinutesRemaining prometheus.Gauge
	Phase            *prometheus.GaugeVec // labels: phase={pre-mission,active,in-transit,complete}

	LogEntries *prometheus.CounterVec // labels: priority={low,normal,high}

	// Snapshot publishing metrics.
	SnapshotsPublished prometheus.Counter
	PublishErrors      prometheus.Counter
}

// NewMetrics creates and registers all tracker metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.TrackerRunning,
		m.PositionTicks,
		m.ResolveDuration,
		m.StationsVisited,
		m.MinutesRemaining,
		m.Phase,
		m.LogEntries,
		m.SnapshotsPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		TrackerRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "courier_tracker",
			Name:      "running",
			Help:      "1 when the tracker loop is active, 0 when shut down.",
		}),
		PositionTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "courier_tracker",
			Name:      "position_ticks_total",
			Help:      "Total position resolutions performed.",
		}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "courier_tracker",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of a single position resolution.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		StationsVisited: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "courier_tracker",
			Name:      "visited_locations",
			Help:      "Length of the visited list, home base included.",
		}),
		MinutesRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "courier_tracker",
			Name:      "minutes_remaining",
			Help:      "Minutes of the target day left at the current station, 0 when none.",
		}),
		Phase: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "courier_tracker",
			Name:      "phase",
			Help:      "1 for the current run phase, 0 for the others.",
		}, []string{"phase"}),
		LogEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "courier_tracker",
			Name:      "log_entries_total",
			Help:      "Log feed entries appended, by priority.",
		}, []string{"priority"}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "courier_tracker",
			Name:      "snapshots_published_total",
			Help:      "Total snapshots written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "courier_tracker",
			Name:      "publish_errors_total",
			Help:      "Total snapshot publish failures.",
		}),
	}
}
