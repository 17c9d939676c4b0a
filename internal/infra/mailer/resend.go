package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const defaultResendEndpoint = "https://api.resend.com/emails"

// ResendConfig contains configuration for the Resend email provider.
type ResendConfig struct {
	// APIKey is the Resend API token
	APIKey string

	// Endpoint overrides the API URL, used in tests. Empty selects the default.
	Endpoint string

	// Timeout is the HTTP request timeout for provider API calls
	Timeout time.Duration
}

// ResendMailer sends email through the Resend HTTP API.
type ResendMailer struct {
	config      ResendConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewResendMailer creates a new ResendMailer with the specified configuration.
//
// The mailer is initialized with:
//   - HTTP client with configured timeout
//   - Rate limiter set to 2 requests/second with burst of 5
//     (Resend free tier allows 2 req/s)
func NewResendMailer(config ResendConfig) *ResendMailer {
	if config.Endpoint == "" {
		config.Endpoint = defaultResendEndpoint
	}
	return &ResendMailer{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(2, 5),
	}
}

// resendPayload represents the JSON payload sent to the provider.
type resendPayload struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	ReplyTo     string             `json:"reply_to,omitempty"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html"`
	Text        string             `json:"text,omitempty"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

// resendAttachment carries one file, base64-encoded for the JSON body.
type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// resendResponse represents the success response from the provider.
type resendResponse struct {
	ID string `json:"id"`
}

// resendErrorResponse represents the error response from the provider.
type resendErrorResponse struct {
	Name       string  `json:"name"`
	Message    string  `json:"message"`
	StatusCode int     `json:"statusCode"`
	RetryAfter float64 `json:"retry_after"` // In seconds
}

// buildPayload converts a Message into the provider wire format.
func buildPayload(msg Message) resendPayload {
	payload := resendPayload{
		From:    msg.From,
		To:      []string{msg.To},
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}
	for _, a := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, resendAttachment{
			Filename: a.Filename,
			Content:  base64.StdEncoding.EncodeToString(a.Content),
		})
	}
	return payload
}

// sendRequest performs one API call.
//
// Error types:
//   - 429: Rate limit error (retryable, contains retry_after duration)
//   - 4xx (non-429): Client error (non-retryable)
//   - 5xx: Server error (retryable)
//   - Network error: Connection/timeout error (retryable)
func (m *ResendMailer) sendRequest(ctx context.Context, msg Message) (SendResult, error) {
	jsonData, err := json.Marshal(buildPayload(msg))
	if err != nil {
		return SendResult{}, fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.Endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return SendResult{}, fmt.Errorf("create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.config.APIKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return SendResult{}, fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var success resendResponse
		if err := json.Unmarshal(body, &success); err != nil {
			return SendResult{}, fmt.Errorf("decode provider response: %w", err)
		}
		return SendResult{ID: success.ID}, nil
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return SendResult{}, &RateLimitError{
			Message:    "email provider rate limit exceeded",
			RetryAfter: extractRetryAfter(resp, body),
		}
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return SendResult{}, &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("email provider client error: %s", string(body)),
		}
	}

	if resp.StatusCode >= 500 {
		return SendResult{}, &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("email provider server error: %s", string(body)),
		}
	}

	return SendResult{}, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// extractRetryAfter extracts retry_after duration from a provider error response.
// It tries the JSON body first, then falls back to the Retry-After header.
func extractRetryAfter(resp *http.Response, body []byte) time.Duration {
	var provErr resendErrorResponse
	if err := json.Unmarshal(body, &provErr); err == nil && provErr.RetryAfter > 0 {
		return time.Duration(provErr.RetryAfter * float64(time.Second))
	}

	if retryAfterHeader := resp.Header.Get("Retry-After"); retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}

	// Default retry after 5 seconds
	return 5 * time.Second
}

// sendWithRetry performs the API call with retry logic.
//
// Retry strategy:
//   - Max attempts: 2
//   - Base delay: 2 seconds
//   - 429 errors: Use retry_after from the provider response
//   - Server errors (5xx): Backoff (2s, 4s)
//   - Client errors (4xx): No retry, fail immediately
//
// All attempts are logged with request_id for tracing.
func (m *ResendMailer) sendWithRetry(ctx context.Context, msg Message) (SendResult, error) {
	const (
		maxAttempts = 2
		baseDelay   = 2 * time.Second
	)

	requestID, _ := ctx.Value(requestIDKey).(string)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := m.sendRequest(ctx, msg)

		if err == nil {
			slog.Info("email send successful",
				slog.String("request_id", requestID),
				slog.String("to", msg.To),
				slog.String("message_id", result.ID),
				slog.Int("attempt", attempt))
			return result, nil
		}

		lastErr = err

		if rateLimitErr, ok := is429Error(err); ok {
			slog.Warn("email provider rate limit hit, backing off",
				slog.String("request_id", requestID),
				slog.String("to", msg.To),
				slog.Duration("retry_after", rateLimitErr.RetryAfter),
				slog.Int("attempt", attempt))

			select {
			case <-time.After(rateLimitErr.RetryAfter):
				continue
			case <-ctx.Done():
				return SendResult{}, fmt.Errorf("context canceled during rate limit backoff: %w", ctx.Err())
			}
		}

		if !isRetryableError(err) {
			slog.Error("email send failed with non-retryable error",
				slog.String("request_id", requestID),
				slog.String("to", msg.To),
				slog.Any("error", err),
				slog.Int("attempt", attempt))
			return SendResult{}, err
		}

		if attempt < maxAttempts {
			delay := baseDelay * time.Duration(attempt)
			slog.Warn("email provider request failed, retrying",
				slog.String("request_id", requestID),
				slog.String("to", msg.To),
				slog.Any("error", err),
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay))

			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return SendResult{}, fmt.Errorf("context canceled during retry backoff: %w", ctx.Err())
			}
		}
	}

	slog.Error("email send failed after all retries",
		slog.String("request_id", requestID),
		slog.String("to", msg.To),
		slog.Any("error", lastErr),
		slog.Int("max_attempts", maxAttempts))

	return SendResult{}, fmt.Errorf("email send failed after %d attempts: %w", maxAttempts, lastErr)
}

// Send dispatches one message through the provider.
// This method implements the Mailer interface.
//
// It performs the following steps:
//  1. Generate unique request_id for tracing
//  2. Apply rate limiting to prevent API abuse
//  3. Send the API request with retry logic
func (m *ResendMailer) Send(ctx context.Context, msg Message) (SendResult, error) {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	slog.Info("starting email send",
		slog.String("request_id", requestID),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("attachments", len(msg.Attachments)))

	if err := m.rateLimiter.Allow(ctx); err != nil {
		slog.Error("rate limiter error",
			slog.String("request_id", requestID),
			slog.String("to", msg.To),
			slog.Any("error", err))
		return SendResult{}, fmt.Errorf("rate limiter error: %w", err)
	}

	return m.sendWithRetry(ctx, msg)
}
