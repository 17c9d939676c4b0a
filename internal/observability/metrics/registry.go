// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Aggregation metrics track content fetching and merging per platform
var (
	// SourceFetchesTotal counts content source fetches by platform and result
	SourceFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_fetches_total",
			Help: "Total number of content source fetches",
		},
		[]string{"platform", "result"}, // result: success, failure
	)

	// SourceFetchDuration measures time to fetch one content source
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_fetch_duration_seconds",
			Help:    "Time taken to fetch a content source",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"platform"},
	)

	// SourceItemsFetched measures items returned per source fetch
	SourceItemsFetched = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_items_fetched",
			Help:    "Number of items returned by a content source fetch",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
		},
		[]string{"platform"},
	)

	// ContentMergeDuplicatesTotal counts cross-platform duplicates collapsed by the merge step
	ContentMergeDuplicatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "content_merge_duplicates_total",
			Help: "Total number of duplicate items collapsed during merge",
		},
	)

	// ExcerptFetchAttemptsTotal counts excerpt enrichment attempts by result
	ExcerptFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "excerpt_fetch_attempts_total",
			Help: "Total number of excerpt enrichment attempts",
		},
		[]string{"result"}, // result: success, failure, skipped
	)

	// ExcerptFetchDuration measures time to fetch and extract an excerpt
	ExcerptFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "excerpt_fetch_duration_seconds",
			Help:    "Time taken to fetch and extract an article excerpt",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)
)

// Submission metrics track form validation and email dispatch
var (
	// SubmissionsTotal counts form submissions by form and outcome
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_total",
			Help: "Total number of form submissions",
		},
		[]string{"form", "outcome"}, // form: contact, order; outcome: accepted, rejected, failed
	)

	// EmailsSentTotal counts emails dispatched by kind and status
	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emails_sent_total",
			Help: "Total number of emails dispatched",
		},
		[]string{"kind", "status"}, // kind: notification, confirmation; status: success, failure
	)

	// EmailSendDuration measures time to complete one provider send call
	EmailSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "email_send_duration_seconds",
			Help:    "Time taken to send an email through the provider",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordSourceFetch records the outcome of a single content source fetch.
func RecordSourceFetch(platform string, ok bool, items int, duration time.Duration) {
	result := "success"
	if !ok {
		result = "failure"
	}
	SourceFetchesTotal.WithLabelValues(platform, result).Inc()
	SourceFetchDuration.WithLabelValues(platform).Observe(duration.Seconds())
	if ok {
		SourceItemsFetched.WithLabelValues(platform).Observe(float64(items))
	}
}

// RecordMergeDuplicates records the number of duplicates collapsed in one merge pass.
func RecordMergeDuplicates(n int) {
	if n > 0 {
		ContentMergeDuplicatesTotal.Add(float64(n))
	}
}

// RecordExcerptFetch records an excerpt enrichment attempt.
func RecordExcerptFetch(result string, duration time.Duration) {
	ExcerptFetchAttemptsTotal.WithLabelValues(result).Inc()
	if result != "skipped" {
		ExcerptFetchDuration.Observe(duration.Seconds())
	}
}

// RecordSubmission records the outcome of a form submission.
func RecordSubmission(form, outcome string) {
	SubmissionsTotal.WithLabelValues(form, outcome).Inc()
}

// RecordEmailSent records one provider send call.
func RecordEmailSent(kind string, ok bool, duration time.Duration) {
	status := "success"
	if !ok {
		status = "failure"
	}
	EmailsSentTotal.WithLabelValues(kind, status).Inc()
	EmailSendDuration.Observe(duration.Seconds())
}
