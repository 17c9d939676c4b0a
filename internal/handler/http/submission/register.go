package submission

import (
	"log/slog"
	"net/http"

	"portfolio-backend/internal/usecase/submit"
)

// Register registers the form submission endpoints with the given mux.
// limit wraps each endpoint with rate limiting; pass an identity function
// to disable it (tests).
func Register(mux *http.ServeMux, svc *submit.Service, logger *slog.Logger, limit func(http.Handler) http.Handler) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	mux.Handle("POST /api/contact", limit(ContactHandler{Svc: svc, Logger: logger}))
	mux.Handle("POST /api/order", limit(OrderHandler{Svc: svc, Logger: logger}))
}
