package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts the total number of pagination requests.
	// Labels: status (HTTP status code), shown_range (shown bucket)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_pagination_requests_total",
			Help: "Total number of paginated content requests",
		},
		[]string{"status", "shown_range"},
	)

	// DurationSeconds tracks request duration distribution.
	// Labels: operation (handler, service)
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "content_pagination_duration_seconds",
			Help:    "Paginated request duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	// TotalCount tracks the size of the most recently served filtered set.
	TotalCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "content_filtered_total",
			Help: "Size of the most recently served filtered content set",
		},
	)

	// ErrorsTotal counts pagination errors by type.
	// Labels: type (validation, upstream, timeout)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a pagination request metric.
func RecordRequest(statusCode int, shown int) {
	RequestsTotal.WithLabelValues(
		fmt.Sprintf("%d", statusCode),
		getShownRangeBucket(shown),
	).Inc()
}

// RecordDuration records operation duration in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// UpdateTotalCount updates the filtered set size gauge.
func UpdateTotalCount(count int) {
	TotalCount.Set(float64(count))
}

// RecordError records an error metric.
// errorType should be one of: "validation", "upstream", "timeout"
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// getShownRangeBucket returns the shown range bucket for a given shown value.
func getShownRangeBucket(shown int) string {
	switch {
	case shown <= 12:
		return "1-12"
	case shown <= 48:
		return "13-48"
	case shown <= 96:
		return "49-96"
	default:
		return "96+"
	}
}
