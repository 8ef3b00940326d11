// Package metrics exposes Prometheus instrumentation for the API server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bilancio_http_requests_total",
		Help: "HTTP requests processed, by method, route and status code.",
	}, []string{"method", "route", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bilancio_http_request_duration_seconds",
		Help:    "HTTP request latency distribution.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	SalaryUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bilancio_salary_updates_total",
		Help: "Salary reconciliations performed.",
	})

	MirroredEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bilancio_mirrored_events_total",
		Help: "Bill calendar events created or refreshed by the worker.",
	})
)

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
