// Package http provides HTTP handlers and middleware for the portfolio
// backend. It includes content and submission endpoints, health checks,
// metrics collection, and various middleware components.
package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"portfolio-backend/internal/domain/entity"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`            // "healthy" or "unhealthy"
	Message string                 `json:"message,omitempty"` // Optional status message
	Details map[string]interface{} `json:"details,omitempty"` // Optional additional details
}

// LocalCatalogue exposes the loaded content collections for health reporting.
type LocalCatalogue interface {
	Articles() []entity.ContentItem
	Achievements() []entity.ContentItem
	Services() []entity.ContentItem
}

// HealthHandler handles health check endpoint requests.
// It reports the state of the content catalogue, the configured external
// content sources, and the mail transport.
type HealthHandler struct {
	Catalogue   LocalCatalogue
	SourceCount int    // Number of configured external content sources
	MailerKind  string // "resend", "noop", or "" when no transport is wired
	Version     string
}

// ServeHTTP performs health checks and returns the application health status.
// Returns 200 OK if healthy, or 503 Service Unavailable if any check fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)
	allHealthy := true

	// カタログ読み込みチェック
	if h.Catalogue != nil {
		checks["catalogue"] = CheckStatus{
			Status: "healthy",
			Details: map[string]interface{}{
				"articles":     len(h.Catalogue.Articles()),
				"achievements": len(h.Catalogue.Achievements()),
				"services":     len(h.Catalogue.Services()),
			},
		}
	} else {
		checks["catalogue"] = CheckStatus{
			Status:  "unhealthy",
			Message: "not loaded",
		}
		allHealthy = false
	}

	// 外部コンテンツソースの設定状況
	// Zero sources is a valid configuration, so it never fails the check.
	checks["sources"] = CheckStatus{
		Status: "healthy",
		Details: map[string]interface{}{
			"configured": h.SourceCount,
		},
	}

	// メール送信チェック
	if h.MailerKind != "" {
		checks["mailer"] = CheckStatus{
			Status:  "healthy",
			Message: h.MailerKind,
		}
	} else {
		checks["mailer"] = CheckStatus{
			Status:  "unhealthy",
			Message: "not configured",
		}
		allHealthy = false
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("failed to encode health response: %v", err)
	}
}

// ReadyHandler handles readiness probe requests.
// The service is ready once the local catalogue has been loaded.
type ReadyHandler struct {
	Catalogue LocalCatalogue
}

// ServeHTTP returns 200 OK when the service is ready to accept traffic.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.Catalogue == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"not ready"}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}

// LiveHandler handles liveness probe requests.
// It always returns 200 OK while the process is running.
type LiveHandler struct{}

// ServeHTTP returns 200 OK to indicate the process is alive.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"alive"}`))
}
