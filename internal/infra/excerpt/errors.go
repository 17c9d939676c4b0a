package excerpt

import "errors"

// Sentinel errors for excerpt fetching.
var (
	// ErrInvalidURL indicates the URL is malformed or uses a forbidden scheme.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrPrivateIP indicates the URL resolves to a private network address.
	ErrPrivateIP = errors.New("URL resolves to private IP")

	// ErrTooManyRedirects indicates the redirect limit was exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrExtractionFailed indicates no readable content could be extracted.
	ErrExtractionFailed = errors.New("content extraction failed")
)
