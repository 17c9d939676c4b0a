// Package mailer provides abstraction for sending transactional email.
// It defines the Mailer interface which allows different providers to be
// used interchangeably through dependency injection.
//
// The package includes an implementation for the Resend HTTP API and a no-op
// mailer for when email dispatch is disabled.
package mailer

import "context"

// Attachment is a file attached to an outgoing message. Content is raw
// bytes; the provider client handles encoding.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one outgoing email.
type Message struct {
	From        string
	To          string
	ReplyTo     string // optional
	Subject     string
	HTML        string
	Text        string // optional plain-text alternative
	Attachments []Attachment
}

// SendResult carries the provider's identifier for an accepted message.
type SendResult struct {
	ID string
}

// Mailer is an interface for sending email through a provider API.
// Implementations should handle rate limiting, retries, and error logging
// internally.
type Mailer interface {
	// Send dispatches a single message and returns the provider message ID.
	//
	// Implementations should:
	//   - Generate a unique request ID for tracing
	//   - Apply rate limiting to prevent API abuse
	//   - Retry transient failures with backoff
	//   - Respect context cancellation
	Send(ctx context.Context, msg Message) (SendResult, error)
}
