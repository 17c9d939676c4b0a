// Package logging configures the service's slog loggers and propagates
// them through request contexts.
//
// Handlers pull the logger with FromContext and attach the request ID with
// WithRequestID, so a form submission's validation, rendering and dispatch
// log lines all share one request_id field.
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func handleSubmit(ctx context.Context) {
//	    l := logging.WithRequestID(ctx, logging.FromContext(ctx))
//	    l.Info("submission accepted")
//	}
package logging
