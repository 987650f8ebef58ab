package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one batch run.
// Batch runs do not serve /metrics; the registry is dumped to a node_exporter textfile.
type Metrics struct {
	RowsRead      *prometheus.CounterVec // labels: dataset
	RowsDropped   *prometheus.CounterVec // labels: dataset, reason={invalid,cutoff}
	MissingValues *prometheus.CounterVec // labels: dataset
	EmptyGroups   *prometheus.CounterVec // labels: table
	TablesWritten prometheus.Counter

	StageDuration *prometheus.HistogramVec // labels: stage
	LastSuccess   prometheus.Gauge
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wind_etl",
			Name:      "rows_read_total",
			Help:      "Raw rows read per dataset.",
		}, []string{"dataset"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wind_etl",
			Name:      "rows_dropped_total",
			Help:      "Raw rows dropped by the cleaner, by dataset and reason.",
		}, []string{"dataset", "reason"}),
		MissingValues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wind_etl",
			Name:      "sentinel_values_total",
			Help:      "Sentinel cells converted to missing values.",
		}, []string{"dataset"}),
		EmptyGroups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wind_etl",
			Name:      "empty_groups_total",
			Help:      "Months or sectors without observations, emitted as missing values.",
		}, []string{"table"}),
		TablesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wind_etl",
			Name:      "tables_written_total",
			Help:      "Output tables written.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wind_etl",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wind_etl",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RowsRead,
		m.RowsDropped,
		m.MissingValues,
		m.EmptyGroups,
		m.TablesWritten,
		m.StageDuration,
		m.LastSuccess,
	}
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() (*Metrics, *prometheus.Registry) {
	m := newMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.collectors()...)
	return m, reg
}

// WriteTextfile dumps the gathered metrics in the text exposition format, atomically
// replacing path, for the node_exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
