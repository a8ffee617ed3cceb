package util

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters of a single CLI run. They are written to a
// node-exporter textfile once the run completes.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsWritten    *prometheus.CounterVec // labels: kind={item,collection}
	PropertiesExtracted prometheus.Counter
	TableRows           *prometheus.CounterVec // labels: table={events,groups,flashes}
	Failures            *prometheus.CounterVec // labels: command
	RunDuration         prometheus.Histogram
}

// NewMetrics creates and registers all metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DocumentsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goes_glm",
			Name:      "documents_written_total",
			Help:      "STAC documents written.",
		}, []string{"kind"}),
		PropertiesExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "goes_glm",
			Name:      "properties_extracted_total",
			Help:      "Variable values extracted into item properties.",
		}),
		TableRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goes_glm",
			Name:      "geoparquet_rows_total",
			Help:      "Rows written to GeoParquet tables.",
		}, []string{"table"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goes_glm",
			Name:      "failures_total",
			Help:      "Commands that ended in an error.",
		}, []string{"command"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "goes_glm",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a single command.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}
	m.registry.MustRegister(
		m.DocumentsWritten,
		m.PropertiesExtracted,
		m.TableRows,
		m.Failures,
		m.RunDuration,
	)
	return m
}

// Gatherer exposes the private registry, mainly for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
// An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
