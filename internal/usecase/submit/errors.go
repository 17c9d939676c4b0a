// Package submit implements the form submission pipeline: validating
// contact and order submissions, rendering the notification and confirmation
// emails, and dispatching them through the configured mailer.
package submit

import "errors"

// Sentinel errors for the submission pipeline.
var (
	// ErrValidationFailed indicates the submission was rejected before any
	// email was dispatched. Field details travel in the ValidationResult.
	ErrValidationFailed = errors.New("submission validation failed")

	// ErrDispatchFailed indicates at least one of the two sends failed.
	// The other send is not rolled back; it may have been delivered.
	ErrDispatchFailed = errors.New("email dispatch failed")
)
