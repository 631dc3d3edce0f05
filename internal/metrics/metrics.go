// Package metrics defines the Prometheus collectors exported by the seekplan server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/me/seekplan/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	LabelPolicy  = "policy"
	LabelOutcome = "outcome"
	LabelMethod  = "method"
	LabelRoute   = "route"
	LabelStatus  = "status"
)

// Metrics groups the collectors. Each instance owns its own registry.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal        *prometheus.CounterVec
	headMovement     *prometheus.HistogramVec
	requestSetSize   prometheus.Histogram
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	rateLimitedTotal prometheus.Counter
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seekplan_runs_total",
				Help: "Total number of scheduling runs by policy and outcome",
			},
			[]string{LabelPolicy, LabelOutcome},
		),
		headMovement: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seekplan_head_movement_cylinders",
				Help:    "Total head movement per successful run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~262k cylinders
			},
			[]string{LabelPolicy},
		),
		requestSetSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seekplan_request_set_size",
				Help:    "Number of cylinder requests per scheduling call",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14), // 1 to 8192
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seekplan_http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{LabelMethod, LabelRoute, LabelStatus},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seekplan_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15), // 100us to ~1.6s
			},
			[]string{LabelMethod, LabelRoute},
		),
		rateLimitedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "seekplan_http_rate_limited_total",
				Help: "Requests rejected by the API rate limiter",
			},
		),
	}
	m.registry.MustRegister(
		m.runsTotal,
		m.headMovement,
		m.requestSetSize,
		m.httpRequests,
		m.httpDuration,
		m.rateLimitedTotal,
	)
	return m
}

// Registry exposes the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun records one scheduling call. err == nil counts as success.
func (m *Metrics) ObserveRun(policy model.Policy, requests int, res model.Result, err error) {
	if m == nil {
		return
	}
	m.requestSetSize.Observe(float64(requests))
	if err != nil {
		m.runsTotal.WithLabelValues(string(policy), "error").Inc()
		return
	}
	m.runsTotal.WithLabelValues(string(policy), "ok").Inc()
	m.headMovement.WithLabelValues(string(policy)).Observe(float64(res.TotalMovement))
}

// ObserveHTTP records one HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncRateLimited counts a request rejected by the rate limiter.
func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.rateLimitedTotal.Inc()
}
