package mailer

import "context"

// NoopMailer is a no-operation implementation of the Mailer interface.
// It is used when no provider API key is configured, so local development
// works without sending real email. This follows the Null Object pattern.
type NoopMailer struct{}

// NewNoopMailer creates a new NoopMailer instance.
func NewNoopMailer() *NoopMailer {
	return &NoopMailer{}
}

// Send does nothing and reports success with a fixed message ID.
func (n *NoopMailer) Send(ctx context.Context, msg Message) (SendResult, error) {
	return SendResult{ID: "noop"}, nil
}
