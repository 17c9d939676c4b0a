// Package excerpt provides article excerpt extraction for content
// enrichment. When a feed item carries no usable summary, the article page
// is fetched and a short plain-text excerpt is extracted with the
// Readability algorithm.
package excerpt

import (
	"fmt"
	"time"

	"portfolio-backend/pkg/config"
)

// Config holds the configuration for excerpt fetching operations.
//
// Security settings:
//   - DenyPrivateIPs: Prevents SSRF attacks by blocking private IP addresses
//   - MaxBodySize: Prevents memory exhaustion from oversized responses
//   - MaxRedirects: Prevents infinite redirect loops
//   - Timeout: Prevents resource starvation from slow servers
type Config struct {
	// Enabled controls whether excerpt fetching is enabled.
	// When false, feed descriptions are used directly.
	Enabled bool

	// Timeout is the maximum duration for a single HTTP request.
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is validated for security (SSRF check).
	MaxRedirects int

	// DenyPrivateIPs controls whether to block access to private IP
	// addresses. Should always be true in production.
	DenyPrivateIPs bool
}

// DefaultConfig returns the default configuration for excerpt fetching.
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024, // 10MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate checks if the configuration values are valid and safe.
func (c *Config) Validate() error {
	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables.
// If a variable is not set or invalid, the default value is used.
// After loading, the configuration is validated.
//
// Environment variables:
//   - EXCERPT_FETCH_ENABLED: "true" or "false" (default: true)
//   - EXCERPT_FETCH_TIMEOUT: duration string, e.g., "10s" (default: 10s)
//   - EXCERPT_FETCH_MAX_BODY_SIZE: integer in bytes (default: 10485760)
//   - EXCERPT_FETCH_MAX_REDIRECTS: integer (default: 5)
//   - EXCERPT_FETCH_DENY_PRIVATE_IPS: "true" or "false" (default: true)
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.Enabled = config.GetEnvBool("EXCERPT_FETCH_ENABLED", cfg.Enabled)
	cfg.Timeout = config.GetEnvDuration("EXCERPT_FETCH_TIMEOUT", cfg.Timeout)
	cfg.MaxBodySize = int64(config.GetEnvInt("EXCERPT_FETCH_MAX_BODY_SIZE", int(cfg.MaxBodySize)))
	cfg.MaxRedirects = config.GetEnvInt("EXCERPT_FETCH_MAX_REDIRECTS", cfg.MaxRedirects)
	cfg.DenyPrivateIPs = config.GetEnvBool("EXCERPT_FETCH_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
