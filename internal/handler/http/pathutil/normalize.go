package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization for optimal performance.
//
// The API itself only serves collection endpoints, but the metrics
// middleware sees every request path including scanner probes like
// /articles/wp-admin. Collapsing subpaths of known collections keeps
// the path label cardinality bounded.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/articles/[^/]+$`), Template: "/api/articles/:slug"},
	{Pattern: regexp.MustCompile(`^/api/achievements/[^/]+$`), Template: "/api/achievements/:slug"},
	{Pattern: regexp.MustCompile(`^/api/services/[^/]+$`), Template: "/api/services/:slug"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/api/articles/go-concurrency")  // "/api/articles/:slug"
//	NormalizePath("/api/articles")                 // "/api/articles" (unchanged)
//	NormalizePath("/api/contact")                  // "/api/contact" (unchanged)
//	NormalizePath("/health")                       // "/health" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/api/articles?category=Design") // "/api/articles"
//	NormalizePath("/api/articles/")                // "/api/articles"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// Static paths like /health, /metrics, /api/contact pass through unchanged.
	return path
}
