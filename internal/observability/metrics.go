package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry so
// tests can create collectors repeatedly without duplicate registration.
type Metrics struct {
	registry *prometheus.Registry

	AuditsTotal       *prometheus.CounterVec
	AuditDuration     prometheus.Histogram
	AuditScore        prometheus.Histogram
	HTTPRequestsTotal *prometheus.CounterVec
}

// NewMetrics registers all collectors and returns the bundle.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.AuditsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seo_audit_audits_total",
			Help: "Completed audits by outcome (success, invalid_url, rate_limited, fetch_failed)",
		},
		[]string{"outcome"},
	)

	m.AuditDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seo_audit_duration_seconds",
			Help:    "End-to-end audit pipeline duration",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45},
		},
	)

	m.AuditScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seo_audit_overall_score",
			Help:    "Distribution of overall audit scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seo_audit_http_requests_total",
			Help: "HTTP requests by method, path, and status",
		},
		[]string{"method", "path", "status"},
	)

	m.registry.MustRegister(
		m.AuditsTotal,
		m.AuditDuration,
		m.AuditScore,
		m.HTTPRequestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
