package http

import (
	"context"
	"log/slog"
	"time"

	"portfolio-backend/internal/handler/http/middleware"
)

// StartRateLimitCleanup drives periodic expiry of the limiter's per-IP
// state. The submission limiter accumulates an entry per visitor IP;
// without this loop the map only grows. Returns when ctx is cancelled at
// shutdown.
func StartRateLimitCleanup(
	ctx context.Context,
	limiter *middleware.RateLimiter,
	interval time.Duration,
	limiterType string,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.String("limiter_type", limiterType),
		slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped",
				slog.String("limiter_type", limiterType))
			return

		case <-ticker.C:
			limiter.CleanupExpired()
			slog.Debug("rate limit cleanup completed",
				slog.String("limiter_type", limiterType))
		}
	}
}
