package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles every collector the process exports. One instance per
// binary; promauto registers the collectors on the default registry, which
// /metrics serves.
type Metrics struct {
	OutboxEventsProcessed   prometheus.Counter
	OutboxEventsFailed      prometheus.Counter
	OutboxProcessingLatency prometheus.Histogram
	OutboxQueueSize         prometheus.Gauge
	OutboxRetries           *prometheus.CounterVec

	DatabaseOperations  *prometheus.CounterVec
	DatabaseLatency     *prometheus.HistogramVec
	DatabaseConnections prometheus.Gauge

	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
	CacheEntries prometheus.Gauge

	ReportsGenerated *prometheus.CounterVec
	ReportLatency    *prometheus.HistogramVec

	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPErrorsTotal     *prometheus.CounterVec
}

var (
	fastBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}
	slowBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	httpBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
)

func NewMetrics(namespace, subsystem string) *Metrics {
	b := builder{namespace: namespace, subsystem: subsystem}

	return &Metrics{
		OutboxEventsProcessed:   b.counter("outbox_events_processed_total", "Outbox events published to the broker"),
		OutboxEventsFailed:      b.counter("outbox_events_failed_total", "Outbox publishes that failed after in-call retries"),
		OutboxProcessingLatency: b.histogram("outbox_processing_duration_seconds", "Time spent processing outbox events", slowBuckets),
		OutboxQueueSize:         b.gauge("outbox_queue_size", "Pending events in the outbox"),
		OutboxRetries:           b.counterVec("outbox_retry_attempts_total", "Retry attempts per event type", "event_type"),

		DatabaseOperations:  b.counterVec("database_operations_total", "Database operations by outcome", "operation", "status"),
		DatabaseLatency:     b.histogramVec("database_operation_duration_seconds", "Database operation latency", fastBuckets, "operation"),
		DatabaseConnections: b.gauge("database_connections", "Open database connections"),

		CacheHits:    b.counter("cache_hits_total", "Cache lookups served from memory"),
		CacheMisses:  b.counter("cache_misses_total", "Cache lookups that fell through"),
		CacheEntries: b.gauge("cache_entries", "Entries currently held in the cache"),

		ReportsGenerated: b.counterVec("reports_generated_total", "Reports assembled, by kind", "kind"),
		ReportLatency:    b.histogramVec("report_generation_duration_seconds", "Report assembly latency, by kind", fastBuckets, "kind"),

		HTTPRequestDuration: b.histogramVec("http_request_duration_seconds", "HTTP request latency", httpBuckets, "method", "path", "status"),
		HTTPRequestsTotal:   b.counterVec("http_requests_total", "HTTP requests served", "method", "path", "status"),
		HTTPErrorsTotal:     b.counterVec("http_errors_total", "HTTP responses with status >= 400", "method", "path"),
	}
}

type builder struct {
	namespace string
	subsystem string
}

func (b builder) counter(name, help string) prometheus.Counter {
	return promauto.NewCounter(prometheus.CounterOpts{
		Namespace: b.namespace, Subsystem: b.subsystem, Name: name, Help: help,
	})
}

func (b builder) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: b.namespace, Subsystem: b.subsystem, Name: name, Help: help,
	}, labels)
}

func (b builder) gauge(name, help string) prometheus.Gauge {
	return promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: b.namespace, Subsystem: b.subsystem, Name: name, Help: help,
	})
}

func (b builder) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: b.namespace, Subsystem: b.subsystem, Name: name, Help: help, Buckets: buckets,
	})
}

func (b builder) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: b.namespace, Subsystem: b.subsystem, Name: name, Help: help, Buckets: buckets,
	}, labels)
}
