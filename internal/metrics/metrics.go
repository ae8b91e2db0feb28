package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	stages        *prometheus.CounterVec
	modelCalls    *prometheus.CounterVec
	modelDuration *prometheus.HistogramVec
	relayForwards *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry together
// with the Go and process collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "volunteerhub",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "volunteerhub",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	m.stages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "volunteerhub",
		Name:      "extraction_stage_total",
		Help:      "Extraction pipeline stage transitions by operation and stage",
	}, []string{"operation", "stage"})
	m.modelCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "volunteerhub",
		Name:      "model_calls_total",
		Help:      "Language model calls by operation and outcome",
	}, []string{"operation", "outcome"})
	m.modelDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "volunteerhub",
		Name:      "model_call_duration_seconds",
		Help:      "Language model call latency by operation",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 120},
	}, []string{"operation"})
	m.relayForwards = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "volunteerhub",
		Name:      "webhook_forwards_total",
		Help:      "Webhook relay outcomes",
	}, []string{"outcome"})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.stages, m.modelCalls, m.modelDuration,
		m.relayForwards,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveStage(operation, stage string) {
	if m == nil {
		return
	}
	m.stages.WithLabelValues(operation, stage).Inc()
}

func (m *Metrics) ObserveModelCall(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.modelCalls.WithLabelValues(operation, outcome).Inc()
	m.modelDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRelay(outcome string) {
	if m == nil {
		return
	}
	m.relayForwards.WithLabelValues(outcome).Inc()
}
