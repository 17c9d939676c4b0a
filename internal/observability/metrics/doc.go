// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Aggregation metrics (source fetches, merge duplicates, excerpt enrichment)
//   - Submission metrics (form outcomes, email dispatch)
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "portfolio-backend/internal/observability/metrics"
//
//	func fetchPlatform(platform string) {
//	    start := time.Now()
//	    items, err := fetch(platform)
//
//	    metrics.RecordSourceFetch(platform, err == nil, len(items), time.Since(start))
//	}
package metrics
