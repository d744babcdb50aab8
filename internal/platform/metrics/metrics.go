package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache outcomes recorded per request.
const (
	OutcomeHit         = "hit"
	OutcomeFetched     = "fetched"
	OutcomeConflict    = "conflict"
	OutcomeFetchFailed = "fetch_failed"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	// Name cache outcomes by sex and outcome
	CacheRequests *prometheus.CounterVec

	// Upstream name list fetch latencies by sex
	FetchLatency *prometheus.HistogramVec

	// HTTP request latencies by route and status
	RequestLatency *prometheus.HistogramVec
}

// New creates and registers all metrics on a fresh registry, so tests can
// build as many instances as they like.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		CacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "genpi_namecache_requests_total",
			Help: "Total name cache requests by sex and outcome",
		}, []string{"sex", "outcome"}),

		FetchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "genpi_namegen_fetch_duration_seconds",
			Help:    "Duration of upstream name list fetches by sex",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"sex"}),

		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "genpi_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// IncrementCacheRequest records one cache outcome.
func (m *Metrics) IncrementCacheRequest(sex, outcome string) {
	if m != nil {
		m.CacheRequests.WithLabelValues(sex, outcome).Inc()
	}
}

// ObserveFetchLatency records the duration of an upstream fetch.
func (m *Metrics) ObserveFetchLatency(sex string, d time.Duration) {
	if m != nil {
		m.FetchLatency.WithLabelValues(sex).Observe(d.Seconds())
	}
}

// ObserveRequestLatency records the duration of an HTTP request.
func (m *Metrics) ObserveRequestLatency(route, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
