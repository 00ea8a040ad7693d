// Package observability exposes Prometheus instruments for the redaction
// service. All instruments are registered on construction; pass a private
// prometheus.NewRegistry() in tests to avoid duplicate registration.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	EntitiesDetected *prometheus.CounterVec
	PipelineLatency  prometheus.Histogram
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	InputBytes       prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics registers all instruments under the given namespace.
// When reg is nil a fresh registry is created and served by Handler().
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Processed redaction requests by outcome.",
		}, []string{"outcome"}),
		EntitiesDetected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_detected_total",
			Help:      "Detected entities by type.",
		}, []string{"type"}),
		PipelineLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_latency_ms",
			Help:      "Detect-and-rewrite pipeline latency in milliseconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500},
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Result cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Result cache misses.",
		}),
		InputBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "input_bytes",
			Help:      "Size of submitted input texts in bytes.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		}),
	}
}

// ObservePipelineLatency records one pipeline pass.
func (m *Metrics) ObservePipelineLatency(d time.Duration) {
	m.PipelineLatency.Observe(float64(d.Microseconds()) / 1000.0)
}

// Handler serves the registry this Metrics was built on.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
