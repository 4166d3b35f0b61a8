package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and exposes the application metrics.
type Collector struct {
	registry        *prometheus.Registry
	entriesCreated  *prometheus.CounterVec
	entriesPosted   prometheus.Counter
	entriesRejected prometheus.Counter
	postingFailures prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// NewCollector builds a Collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		entriesCreated: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "journal_entries_created_total",
			Help: "Journal entries created, by source transaction type",
		}, []string{"source_type"}),
		entriesPosted: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "journal_entries_posted_total",
			Help: "Journal entries that reached posted status",
		}),
		entriesRejected: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "journal_entries_rejected_total",
			Help: "Journal entries rejected during approval",
		}),
		postingFailures: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "journal_posting_failures_total",
			Help: "Posting attempts that failed on a state or storage error",
		}),
		requestDuration: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// RecordEntryCreated counts a created journal entry by source type.
func (c *Collector) RecordEntryCreated(sourceType string) {
	c.entriesCreated.WithLabelValues(sourceType).Inc()
}

// RecordEntryPosted counts a successfully posted entry.
func (c *Collector) RecordEntryPosted() {
	c.entriesPosted.Inc()
}

// RecordEntryRejected counts a rejected entry.
func (c *Collector) RecordEntryRejected() {
	c.entriesRejected.Inc()
}

// RecordPostingFailure counts a failed posting attempt.
func (c *Collector) RecordPostingFailure() {
	c.postingFailures.Inc()
}

// ObserveRequest records one HTTP request's latency.
func (c *Collector) ObserveRequest(method, route, status string, seconds float64) {
	c.requestDuration.WithLabelValues(method, route, status).Observe(seconds)
}

// Handler exposes the registry in Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
