// Package metrics provides Prometheus metrics for the site server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "insightexus"

var (
	// HTTPRequestsTotal counts handled HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// SearchQueriesTotal counts searches by mode (quick, fulltext) and outcome state.
	SearchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_queries_total",
			Help:      "Total number of search queries",
		},
		[]string{"mode", "state"},
	)

	// ContactSubmissionsTotal counts contact form submissions by outcome.
	ContactSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Total number of contact form submissions",
		},
		[]string{"status"},
	)

	// ContentReloadsTotal counts content reloads by result.
	ContentReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_reloads_total",
			Help:      "Total number of content reloads",
		},
		[]string{"result"},
	)

	// IndexedRecords tracks how many normalized records the search index holds, per kind.
	IndexedRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "search_indexed_records",
			Help:      "Number of records in the search index",
		},
		[]string{"kind"},
	)
)

// RecordHTTP records a handled request.
func RecordHTTP(method, route, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordSearch records a search query.
func RecordSearch(mode, state string) {
	SearchQueriesTotal.WithLabelValues(mode, state).Inc()
}

// RecordContact records a contact submission outcome.
func RecordContact(status string) {
	ContactSubmissionsTotal.WithLabelValues(status).Inc()
}

// RecordReload records a content reload outcome ("ok" or "error").
func RecordReload(result string) {
	ContentReloadsTotal.WithLabelValues(result).Inc()
}

// SetIndexedRecords sets the indexed record gauge for kind.
func SetIndexedRecords(kind string, n int) {
	IndexedRecords.WithLabelValues(kind).Set(float64(n))
}
