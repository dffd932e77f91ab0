package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the billing pipeline.
// One instance is created at startup and shared through the service layer.
type Metrics struct {
	registry *prometheus.Registry

	WorkbooksNormalized  prometheus.Counter
	NormalizationErrors  prometheus.Counter
	LedgerRows           prometheus.Gauge
	NormalizationSeconds prometheus.Histogram
	MetricsRequests      prometheus.Counter
}

// NewMetrics creates the collectors on a dedicated registry so tests can
// instantiate it repeatedly without duplicate-registration panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		WorkbooksNormalized: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "faturacli",
			Name:      "workbooks_normalized_total",
			Help:      "Number of workbooks successfully normalized into a ledger.",
		}),
		NormalizationErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "faturacli",
			Name:      "normalization_errors_total",
			Help:      "Number of workbook uploads that failed normalization.",
		}),
		LedgerRows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "faturacli",
			Name:      "ledger_rows",
			Help:      "Row count of the currently loaded ledger.",
		}),
		NormalizationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "faturacli",
			Name:      "normalization_duration_seconds",
			Help:      "Time spent normalizing an uploaded workbook.",
			Buckets:   prometheus.DefBuckets,
		}),
		MetricsRequests: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "faturacli",
			Name:      "metrics_requests_total",
			Help:      "Number of billing metrics computations served.",
		}),
	}
}

// Handler returns the HTTP handler exposing the registry in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
