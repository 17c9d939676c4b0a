package submission

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"portfolio-backend/internal/domain/entity"
	"portfolio-backend/internal/handler/http/requestid"
	"portfolio-backend/internal/handler/http/respond"
	"portfolio-backend/internal/observability/logging"
	"portfolio-backend/internal/usecase/submit"
)

// dispatchFailedMessage is the opaque body returned when validation passed
// but the email dispatch failed. Provider errors never reach the client.
const dispatchFailedMessage = "Failed to send message. Please try again later."

// ContactHandler serves the contact form endpoint.
type ContactHandler struct {
	Svc    *submit.Service
	Logger *slog.Logger
}

// ServeHTTP handles a contact inquiry.
//
// Responses:
//   - 200 {success:true, messageId} on successful dispatch
//   - 400 {success:false, errors:{field:message}} on validation failure
//   - 500 {success:false, error} when dispatch fails
func (h ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Malformed contact request body",
			"error", err.Error(),
			"request_id", reqID)
		respond.JSON(w, http.StatusBadRequest, contactResponse{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	result, fields, err := h.Svc.SubmitContact(ctx, entity.ContactSubmission{
		Name:        req.Name,
		Email:       req.Email,
		Company:     req.Company,
		ProjectType: req.ProjectType,
		Budget:      req.Budget,
		Timeline:    req.Timeline,
		Message:     req.Message,
	})

	if err != nil {
		logger.Error("Contact dispatch failed",
			"error", err.Error(),
			"duration_ms", time.Since(startTime).Milliseconds(),
			"request_id", reqID)
		respond.JSON(w, http.StatusInternalServerError, contactResponse{
			Success: false,
			Error:   dispatchFailedMessage,
		})
		return
	}

	if fields != nil {
		logger.Info("Contact submission rejected",
			"fields", len(fields),
			"request_id", reqID)
		respond.JSON(w, http.StatusBadRequest, contactResponse{
			Success: false,
			Errors:  fields,
		})
		return
	}

	logger.Info("Contact submission accepted",
		"message_id", result.NotificationID,
		"duration_ms", time.Since(startTime).Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, contactResponse{
		Success:   true,
		MessageID: result.NotificationID,
	})
}
