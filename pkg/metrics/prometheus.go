// Package metrics provides Prometheus metrics for the advisor service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scoring outcomes.
const (
	OutcomeOK                 = "ok"
	OutcomeConfigurationError = "configuration_error"
	OutcomeStoreError         = "store_error"
)

// Manager manages all Prometheus metrics for the advisor service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Scoring
	scoringRequests     *prometheus.CounterVec
	scoringLatency      *prometheus.HistogramVec
	configurationErrors *prometheus.CounterVec
	advicesComputed     prometheus.Histogram
	batchSize           prometheus.Histogram

	// Reference data
	referenceReads       *prometheus.CounterVec
	referenceReadLatency *prometheus.HistogramVec
	referenceDocuments   *prometheus.GaugeVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System
	systemMemoryUsage   prometheus.Gauge
	systemGoroutines    prometheus.Gauge
	systemGCPauseMillis prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "advisor",
		subsystem:        "engine",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)

	m.scoringRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "scoring_requests_total",
			Help:        "Total number of scoring requests by model and outcome",
			ConstLabels: m.constLabels,
		},
		[]string{"model", "outcome"},
	)

	m.scoringLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "scoring_latency_milliseconds",
			Help:        "Histogram of scoring latency in milliseconds by model",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"model"},
	)

	m.configurationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "configuration_errors_total",
			Help:        "Total number of configuration errors (unknown model, bad filter, bad document)",
			ConstLabels: m.constLabels,
		},
		[]string{"kind"},
	)

	m.advicesComputed = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "advices_per_user",
		Help:        "Number of relevant advices computed per user",
		Buckets:     prometheus.LinearBuckets(0, 2, 10),
		ConstLabels: m.constLabels,
	})

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_size",
		Help:        "Number of users scored per batch request",
		Buckets:     prometheus.ExponentialBuckets(1, 2, 10),
		ConstLabels: m.constLabels,
	})

	m.referenceReads = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "reference_reads_total",
			Help:        "Total number of reference data reads by collection, operation and result",
			ConstLabels: m.constLabels,
		},
		[]string{"collection", "operation", "result"},
	)

	m.referenceReadLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "reference_read_latency_milliseconds",
			Help:        "Reference data read latency in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"operation"},
	)

	m.referenceDocuments = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "reference_documents",
			Help:        "Number of reference documents loaded per collection",
			ConstLabels: m.constLabels,
		},
		[]string{"collection"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_errors_total",
			Help:        "Total number of HTTP error responses by endpoint, type and severity",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "error_type", "severity"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Bytes of allocated heap objects",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutines",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})

	m.systemGCPauseMillis = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "gc_pause_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
}

// RecordScoring records one scoring call.
func (m *Manager) RecordScoring(model, outcome string, latencyMs float64) {
	m.scoringRequests.WithLabelValues(model, outcome).Inc()
	m.scoringLatency.WithLabelValues(model).Observe(latencyMs)
}

// RecordConfigurationError increments the configuration errors counter.
func (m *Manager) RecordConfigurationError(kind string) {
	m.configurationErrors.WithLabelValues(kind).Inc()
}

// RecordReferenceRead records one reference data read.
func (m *Manager) RecordReferenceRead(collection, operation, result string, latencyMs float64) {
	m.referenceReads.WithLabelValues(collection, operation, result).Inc()
	m.referenceReadLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordScoring records one scoring call.
func RecordScoring(model, outcome string, latencyMs float64) {
	globalManager.RecordScoring(model, outcome, latencyMs)
}

// RecordConfigurationError increments the configuration errors counter.
func RecordConfigurationError(kind string) {
	globalManager.RecordConfigurationError(kind)
}

// RecordAdvicesComputed records how many advices were relevant for a user.
func RecordAdvicesComputed(count int) {
	globalManager.advicesComputed.Observe(float64(count))
}

// RecordBatchSize records the size of a batch request.
func RecordBatchSize(size int) {
	globalManager.batchSize.Observe(float64(size))
}

// RecordReferenceRead records one reference data read.
func RecordReferenceRead(collection, operation, result string, latencyMs float64) {
	globalManager.RecordReferenceRead(collection, operation, result, latencyMs)
}

// UpdateReferenceDocuments sets the number of documents loaded in a collection.
func UpdateReferenceDocuments(collection string, count int) {
	globalManager.referenceDocuments.WithLabelValues(collection).Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordHTTPError records an HTTP error response.
func RecordHTTPError(endpoint, method, errorType, severity string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutines.Set(float64(count))
}

// RecordSystemGCPauseTime records the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseMillis.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
