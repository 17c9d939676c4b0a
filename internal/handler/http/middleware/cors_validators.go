package middleware

import (
	"strings"
)

// WhitelistValidator allows only origins that exactly match a configured
// list. The portfolio frontend origins are known ahead of time, so no
// pattern matching is needed.
type WhitelistValidator struct {
	allowedOrigins []string
}

// NewWhitelistValidator builds a validator from the given origins. Each
// entry is trimmed, lowercased, and stripped of a trailing slash; empty
// entries are dropped.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	normalized := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		origin = strings.ToLower(origin)
		origin = strings.TrimSuffix(origin, "/")
		normalized = append(normalized, origin)
	}

	return &WhitelistValidator{allowedOrigins: normalized}
}

// IsAllowed reports whether origin is on the whitelist. Comparison is
// case-insensitive and ignores a trailing slash; an empty origin is never
// allowed.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	if origin == "" {
		return false
	}

	origin = strings.ToLower(strings.TrimSpace(origin))
	origin = strings.TrimSuffix(origin, "/")

	for _, allowed := range v.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// GetAllowedOrigins returns a copy of the normalized whitelist.
func (v *WhitelistValidator) GetAllowedOrigins() []string {
	out := make([]string, len(v.allowedOrigins))
	copy(out, v.allowedOrigins)
	return out
}
