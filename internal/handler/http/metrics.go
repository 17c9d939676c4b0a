package http

import (
	"net/http"
	"strconv"
	"time"

	"portfolio-backend/internal/handler/http/pathutil"
	"portfolio-backend/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsWriter records status and response size for the request metrics.
type metricsWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *metricsWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *metricsWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// MetricsMiddleware records duration, sizes and status per request. Paths
// are normalized first (/api/articles/go-concurrency becomes
// /api/articles/:slug) so slugs do not blow up label cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		normalizedPath := pathutil.NormalizePath(r.URL.Path)

		requestSize := 0
		if r.ContentLength > 0 {
			requestSize = int(r.ContentLength)
		}

		rw := &metricsWriter{ResponseWriter: w, statusCode: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rw, r)
		duration := time.Since(start)

		metrics.RecordHTTPRequest(r.Method, normalizedPath, strconv.Itoa(rw.statusCode), duration, requestSize, rw.size)
	})
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
