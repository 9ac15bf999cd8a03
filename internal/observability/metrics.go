package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "course_compass"

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// LLM provider metrics
	LLMCalls    *prometheus.CounterVec
	LLMDuration *prometheus.HistogramVec

	// Study materials by source (cache, generated, fallback)
	Materials *prometheus.CounterVec

	// Catalog metrics
	GraphReloads prometheus.Counter
	GraphCourses prometheus.Gauge
}

// NewCollector creates a collector registered on its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		LLMCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "llm_calls_total",
				Help:      "Total number of LLM provider calls",
			},
			[]string{"model", "operation", "status"},
		),
		LLMDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "llm_call_duration_seconds",
				Help:      "LLM provider call duration in seconds",
				Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
			},
			[]string{"model", "operation"},
		),
		Materials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "study_materials_total",
				Help:      "Study material responses by source",
			},
			[]string{"source"},
		),
		GraphReloads: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "graph_reloads_total",
				Help:      "Total number of course graph snapshots loaded",
			},
		),
		GraphCourses: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "graph_courses",
				Help:      "Number of courses in the loaded snapshot",
			},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.LLMCalls,
		c.LLMDuration,
		c.Materials,
		c.GraphReloads,
		c.GraphCourses,
		prometheus.NewGoCollector(),
	)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveLLMCall records one provider call.
func (c *Collector) ObserveLLMCall(model, operation string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.LLMCalls.WithLabelValues(model, operation, status).Inc()
	c.LLMDuration.WithLabelValues(model, operation).Observe(elapsed.Seconds())
}

// ObserveMaterials records where a study-materials response came from.
func (c *Collector) ObserveMaterials(source string) {
	c.Materials.WithLabelValues(source).Inc()
}

// ObserveGraphReload records a newly loaded snapshot.
func (c *Collector) ObserveGraphReload(courses int) {
	c.GraphReloads.Inc()
	c.GraphCourses.Set(float64(courses))
}
