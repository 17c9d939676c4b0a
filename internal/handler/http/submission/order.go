package submission

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"portfolio-backend/internal/domain/entity"
	"portfolio-backend/internal/handler/http/requestid"
	"portfolio-backend/internal/handler/http/respond"
	"portfolio-backend/internal/observability/logging"
	"portfolio-backend/internal/usecase/submit"
)

// maxOrderMemory bounds how much of the multipart body is held in memory
// while parsing; larger parts spill to temporary files.
const maxOrderMemory = 8 << 20 // 8MB

// orderAcceptedMessage is returned on a successful order submission.
const orderAcceptedMessage = "Your order has been submitted successfully!"

// OrderHandler serves the service order endpoint.
type OrderHandler struct {
	Svc    *submit.Service
	Logger *slog.Logger
}

// ServeHTTP handles an order submission as multipart form data with
// optional file attachments under the "files" field.
//
// Responses:
//   - 200 {success:true, message, clientEmailId, sellerEmailId}
//   - 400 {success:false, errors:{field:message}} on validation failure
//   - 500 {success:false, error} when dispatch fails
func (h OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	if err := r.ParseMultipartForm(maxOrderMemory); err != nil {
		logger.Warn("Malformed order request body",
			"error", err.Error(),
			"request_id", reqID)
		respond.JSON(w, http.StatusBadRequest, orderResponse{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	attachments, err := readAttachments(r)
	if err != nil {
		logger.Warn("Failed to read order attachments",
			"error", err.Error(),
			"request_id", reqID)
		respond.JSON(w, http.StatusBadRequest, orderResponse{
			Success: false,
			Error:   "Invalid attachment upload",
		})
		return
	}

	result, fields, err := h.Svc.SubmitOrder(ctx, entity.OrderSubmission{
		Name:          r.FormValue("name"),
		Email:         r.FormValue("email"),
		Service:       r.FormValue("service"),
		Requirements:  r.FormValue("requirements"),
		Deadline:      r.FormValue("deadline"),
		Budget:        r.FormValue("budget"),
		PaymentMethod: r.FormValue("paymentMethod"),
		Attachments:   attachments,
	})

	if err != nil {
		logger.Error("Order dispatch failed",
			"error", err.Error(),
			"duration_ms", time.Since(startTime).Milliseconds(),
			"request_id", reqID)
		respond.JSON(w, http.StatusInternalServerError, orderResponse{
			Success: false,
			Error:   dispatchFailedMessage,
		})
		return
	}

	if fields != nil {
		logger.Info("Order submission rejected",
			"fields", len(fields),
			"request_id", reqID)
		respond.JSON(w, http.StatusBadRequest, orderResponse{
			Success: false,
			Errors:  fields,
		})
		return
	}

	logger.Info("Order submission accepted",
		"seller_email_id", result.NotificationID,
		"client_email_id", result.ConfirmationID,
		"attachments", len(attachments),
		"duration_ms", time.Since(startTime).Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, orderResponse{
		Success:       true,
		Message:       orderAcceptedMessage,
		ClientEmailID: result.ConfirmationID,
		SellerEmailID: result.NotificationID,
	})
}

// readAttachments reads every uploaded file from the "files" multipart
// field. Size and count limits are enforced by submission validation, not
// here, so limit violations produce field errors rather than opaque 400s.
func readAttachments(r *http.Request) ([]entity.Attachment, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		// 一部のクライアントは files[] で送ってくる
		headers = r.MultipartForm.File["files[]"]
	}

	attachments := make([]entity.Attachment, 0, len(headers))
	for _, header := range headers {
		attachment, err := readAttachment(header)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}
	return attachments, nil
}

func readAttachment(header *multipart.FileHeader) (entity.Attachment, error) {
	file, err := header.Open()
	if err != nil {
		return entity.Attachment{}, fmt.Errorf("open upload %q: %w", header.Filename, err)
	}
	defer func() {
		_ = file.Close()
	}()

	// Read one byte past the per-file limit so oversized uploads are
	// detected by validation instead of being silently truncated.
	content, err := io.ReadAll(io.LimitReader(file, entity.MaxAttachmentSize+1))
	if err != nil {
		return entity.Attachment{}, fmt.Errorf("read upload %q: %w", header.Filename, err)
	}

	return entity.Attachment{Filename: header.Filename, Content: content}, nil
}
