package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus instruments exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	DatasetRecords  prometheus.Gauge
	DroppedRecords  prometheus.Gauge
}

// NewMetrics creates a metrics bundle backed by its own registry so tests
// can create instances without duplicate registration panics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wagelens",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wagelens",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DatasetRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "wagelens",
			Name:      "dataset_records",
			Help:      "Regular payroll records held in memory.",
		}),
		DroppedRecords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "wagelens",
			Name:      "dataset_dropped_records",
			Help:      "Rows discarded at load for unparseable period end dates.",
		}),
	}
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
