package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the policy the CORS middleware enforces.
type CORSConfig struct {
	// AllowedOrigins mirrors the validator's whitelist for startup
	// logging; the Validator is what actually decides.
	AllowedOrigins []string

	// AllowedMethods and AllowedHeaders are advertised on preflight
	// responses.
	AllowedMethods []string
	AllowedHeaders []string

	// AllowCredentials permits cookies and credentialed requests. The
	// frontend sends the request ID header cross-origin, so this stays
	// on.
	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int

	// Validator decides per-origin; Logger may be nil.
	Validator OriginValidator
	Logger    CORSLogger
}

// CORS validates the Origin header and sets response headers for allowed
// origins. Same-origin requests (no Origin header) pass through untouched.
// A disallowed origin is logged and forwarded without CORS headers, which
// makes the browser block the response. Preflight OPTIONS requests are
// answered with 204 directly.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Validator.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed", map[string]interface{}{
						"origin":      origin,
						"path":        r.URL.Path,
						"method":      r.Method,
						"remote_addr": r.RemoteAddr,
					})
				}
				next.ServeHTTP(w, r)
				return
			}

			// credentials 付きのため Allow-Origin はワイルドカード不可、オリジンをそのまま返す
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))

				if config.Logger != nil {
					config.Logger.Debug("CORS: preflight request", map[string]interface{}{
						"origin":            origin,
						"requested_method":  r.Header.Get("Access-Control-Request-Method"),
						"requested_headers": r.Header.Get("Access-Control-Request-Headers"),
					})
				}

				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
