package middleware

// OriginValidator decides whether an Origin header value may make
// cross-origin requests. The portfolio uses exact-match whitelisting; the
// interface keeps the CORS middleware independent of the strategy.
type OriginValidator interface {
	// IsAllowed reports whether origin may make CORS requests. An empty
	// origin is never allowed.
	IsAllowed(origin string) bool

	// GetAllowedOrigins returns the configured origins for startup
	// logging. Implementations return a copy, not internal state.
	GetAllowedOrigins() []string
}

// ConfigSource loads CORS settings. The production source reads
// environment variables; tests substitute fixed values.
type ConfigSource interface {
	// LoadOrigins returns the allowed origins. Fail-closed: an empty or
	// invalid list is an error, not an allow-all default.
	LoadOrigins() ([]string, error)

	// LoadMethods returns the allowed HTTP methods, with a sensible
	// default when unconfigured.
	LoadMethods() ([]string, error)

	// LoadHeaders returns the allowed request headers, with a default
	// covering Content-Type and X-Request-ID.
	LoadHeaders() ([]string, error)

	// LoadMaxAge returns the preflight cache duration in seconds.
	// Must be non-negative; 0 disables caching.
	LoadMaxAge() (int, error)
}

// CORSLogger decouples the middleware from a concrete logger so tests can
// silence it. SlogAdapter is the production implementation.
type CORSLogger interface {
	Info(msg string, fields map[string]interface{})

	// Warn records policy violations: rejected origins, malformed
	// Origin headers.
	Warn(msg string, fields map[string]interface{})

	// Debug records per-request detail such as preflight handling.
	Debug(msg string, fields map[string]interface{})
}
