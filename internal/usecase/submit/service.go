package submit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"portfolio-backend/internal/domain/entity"
	"portfolio-backend/internal/infra/mailer"
	"portfolio-backend/internal/observability/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config holds the addressing used for dispatched email.
type Config struct {
	// From is the sender address for all outgoing mail, e.g.
	// "Portfolio <noreply@example.com>".
	From string

	// OwnerEmail receives the notification for every submission.
	OwnerEmail string

	// SiteName appears in subjects and signatures.
	SiteName string
}

// DispatchResult carries the provider message IDs of a successful dispatch.
type DispatchResult struct {
	NotificationID string
	ConfirmationID string
}

// Service runs the submission pipeline: validate, render, dispatch.
//
// A submission moves through Validating into either Rejected (field errors,
// nothing sent) or Sending. Sending issues the owner notification and the
// submitter confirmation concurrently and waits for both. The submission
// succeeds only when both sends succeed; if either fails the whole dispatch
// is reported as failed, and the send that already went out is not recalled.
type Service struct {
	Mailer   mailer.Mailer
	Renderer *Renderer
	Config   Config
}

// NewService creates a submission Service.
func NewService(m mailer.Mailer, r *Renderer, cfg Config) *Service {
	return &Service{Mailer: m, Renderer: r, Config: cfg}
}

// SubmitContact validates and dispatches a contact inquiry. Field errors are
// returned in the ValidationResult with no email sent; a non-nil error means
// validation passed but dispatch failed.
func (s *Service) SubmitContact(ctx context.Context, sub entity.ContactSubmission) (*DispatchResult, entity.ValidationResult, error) {
	if fields := ValidateContact(sub); !fields.Valid() {
		metrics.RecordSubmission("contact", "rejected")
		return nil, fields, nil
	}

	emails, err := s.Renderer.RenderContact(sub)
	if err != nil {
		metrics.RecordSubmission("contact", "failed")
		return nil, nil, fmt.Errorf("render contact emails: %w", err)
	}

	result, err := s.dispatch(ctx, "contact", sub.Email, emails, nil)
	if err != nil {
		metrics.RecordSubmission("contact", "failed")
		return nil, nil, err
	}

	metrics.RecordSubmission("contact", "accepted")
	return result, nil, nil
}

// SubmitOrder validates and dispatches a service order. Attachments travel
// on the owner notification only.
func (s *Service) SubmitOrder(ctx context.Context, sub entity.OrderSubmission) (*DispatchResult, entity.ValidationResult, error) {
	if fields := ValidateOrder(sub); !fields.Valid() {
		metrics.RecordSubmission("order", "rejected")
		return nil, fields, nil
	}

	emails, err := s.Renderer.RenderOrder(sub)
	if err != nil {
		metrics.RecordSubmission("order", "failed")
		return nil, nil, fmt.Errorf("render order emails: %w", err)
	}

	attachments := make([]mailer.Attachment, 0, len(sub.Attachments))
	for _, a := range sub.Attachments {
		attachments = append(attachments, mailer.Attachment{Filename: a.Filename, Content: a.Content})
	}

	result, err := s.dispatch(ctx, "order", sub.Email, emails, attachments)
	if err != nil {
		metrics.RecordSubmission("order", "failed")
		return nil, nil, err
	}

	metrics.RecordSubmission("order", "accepted")
	return result, nil, nil
}

// dispatch sends the owner notification and the submitter confirmation
// concurrently and waits for both. Both sends share a submission ID for log
// correlation.
func (s *Service) dispatch(ctx context.Context, form, submitterEmail string, emails *RenderedEmails, attachments []mailer.Attachment) (*DispatchResult, error) {
	logger := slog.Default()
	submissionID := uuid.New().String()

	logger.Info("dispatching submission emails",
		slog.String("submission_id", submissionID),
		slog.String("form", form),
		slog.Int("attachments", len(attachments)))

	// Both sends run to completion even if the sibling fails; a failure marks
	// the whole dispatch failed but never cancels the other send.
	result := &DispatchResult{}
	var eg errgroup.Group

	eg.Go(func() error {
		start := time.Now()
		res, err := s.Mailer.Send(ctx, mailer.Message{
			From:        s.Config.From,
			To:          s.Config.OwnerEmail,
			ReplyTo:     submitterEmail,
			Subject:     emails.NotificationSubject,
			HTML:        emails.NotificationHTML,
			Text:        emails.NotificationText,
			Attachments: attachments,
		})
		metrics.RecordEmailSent("notification", err == nil, time.Since(start))
		if err != nil {
			return fmt.Errorf("send owner notification: %w", err)
		}
		result.NotificationID = res.ID
		return nil
	})

	eg.Go(func() error {
		start := time.Now()
		res, err := s.Mailer.Send(ctx, mailer.Message{
			From:    s.Config.From,
			To:      submitterEmail,
			Subject: emails.ConfirmationSubject,
			HTML:    emails.ConfirmationHTML,
		})
		metrics.RecordEmailSent("confirmation", err == nil, time.Since(start))
		if err != nil {
			return fmt.Errorf("send submitter confirmation: %w", err)
		}
		result.ConfirmationID = res.ID
		return nil
	})

	if err := eg.Wait(); err != nil {
		// The other send may already have been delivered; it is not recalled.
		logger.Error("submission dispatch failed",
			slog.String("submission_id", submissionID),
			slog.String("form", form),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}

	logger.Info("submission dispatch completed",
		slog.String("submission_id", submissionID),
		slog.String("form", form),
		slog.String("notification_id", result.NotificationID),
		slog.String("confirmation_id", result.ConfirmationID))

	return result, nil
}
