package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/ideascore-backend/internal/domain"
)

// Metrics owns a private registry so tests can build as many as they like.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	opTotal      *prometheus.CounterVec
	opDuration   *prometheus.HistogramVec
	finalScores  prometheus.Histogram
	rankedIdeas  prometheus.Histogram
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	httpInflight prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		opTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ideascore_operations_total",
			Help: "Scoring engine operations by name and outcome.",
		}, []string{"op", "outcome"}),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ideascore_operation_duration_seconds",
			Help:    "Scoring engine operation latency in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"op"}),
		finalScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ideascore_final_score",
			Help:    "Distribution of computed weighted idea scores.",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
		rankedIdeas: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ideascore_ranked_ideas",
			Help:    "Number of ideas recomputed per ranking call.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ideascore_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ideascore_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ideascore_http_inflight_requests",
			Help: "In-flight HTTP requests.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.opTotal, m.opDuration, m.finalScores, m.rankedIdeas,
		m.httpRequests, m.httpLatency, m.httpInflight,
	)
	return m
}

// ObserveOp records one service operation. Outcome is the domain error code,
// "ok" on success, or "error" for unclassified failures.
func (m *Metrics) ObserveOp(op string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(domain.CodeOf(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	m.opTotal.WithLabelValues(op, outcome).Inc()
	m.opDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveFinalScore(v float64) {
	if m == nil {
		return
	}
	m.finalScores.Observe(v)
}

func (m *Metrics) ObserveRankedIdeas(n int) {
	if m == nil {
		return
	}
	m.rankedIdeas.Observe(float64(n))
}

func (m *Metrics) HTTPStarted() {
	if m == nil {
		return
	}
	m.httpInflight.Inc()
}

func (m *Metrics) HTTPFinished(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpInflight.Dec()
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
