// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C Trace Context from incoming requests,
// opens a server span per request, and echoes the trace ID in the
// X-Trace-Id response header so the frontend can correlate failures.
//
// Example usage:
//
//	mux := http.NewServeMux()
//	handler := tracing.Middleware(mux)
//
//	func enrichItems(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "enrich-items")
//	    defer span.End()
//	    // ... fetch excerpts ...
//	}
//
// No exporter is configured here; the process inherits whatever tracer
// provider main installs (the default no-op provider unless an exporter is
// wired in deployment).
package tracing
