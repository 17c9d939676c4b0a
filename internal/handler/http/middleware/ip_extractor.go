package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"portfolio-backend/pkg/config"
)

// IPExtractor resolves the client IP a rate-limit decision is keyed on.
// The default strategy reads the TCP peer address; header-based extraction
// is opt-in and only honored for requests arriving from trusted proxies.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the connection peer address. The client cannot
// spoof it, so this is the safe default when no reverse proxy is in front.
type RemoteAddrExtractor struct{}

// ExtractIP strips the port from r.RemoteAddr. IPv4 and bracketed IPv6
// forms are both handled.
func (e *RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyConfig lists the reverse proxies whose forwarding headers are
// believed.
type TrustedProxyConfig struct {
	// Enabled gates all header-based extraction.
	Enabled bool

	// AllowedCIDRs holds trusted proxy ranges. Single IPs are stored as
	// /32 or /128 prefixes.
	AllowedCIDRs []netip.Prefix
}

// IsTrusted reports whether remoteAddr belongs to a trusted proxy range.
func (c *TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// LoadTrustedProxyConfig reads proxy trust settings from the environment.
//
//   - RATE_LIMIT_TRUST_PROXY: "true" enables header-based extraction
//   - RATE_LIMIT_TRUSTED_PROXIES: comma-separated IPs or CIDR ranges
//
// Fail-closed: enabling trust with an empty or invalid proxy list is a
// startup error rather than a silent fallback.
func LoadTrustedProxyConfig() (*TrustedProxyConfig, error) {
	cfg := &TrustedProxyConfig{
		Enabled:      config.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
		AllowedCIDRs: []netip.Prefix{},
	}
	if !cfg.Enabled {
		return cfg, nil
	}

	proxies := config.GetEnvStringList("RATE_LIMIT_TRUSTED_PROXIES", nil)
	if len(proxies) == 0 {
		return nil, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but RATE_LIMIT_TRUSTED_PROXIES is empty")
	}

	for _, proxyStr := range proxies {
		prefix, err := parsePrefixOrAddr(proxyStr)
		if err != nil {
			return nil, err
		}
		cfg.AllowedCIDRs = append(cfg.AllowedCIDRs, prefix)
	}
	return cfg, nil
}

// parsePrefixOrAddr accepts CIDR notation or a bare IP, widening the latter
// to a host prefix.
func parsePrefixOrAddr(s string) (netip.Prefix, error) {
	s = strings.TrimSpace(s)
	if prefix, err := netip.ParsePrefix(s); err == nil {
		return prefix, nil
	}
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid IP or CIDR format '%s': must be valid IP address or CIDR notation (e.g., '192.168.1.1' or '10.0.0.0/8')", s)
	}
	if ip.Is4() {
		return netip.PrefixFrom(ip, 32), nil
	}
	return netip.PrefixFrom(ip, 128), nil
}

// TrustedProxyExtractor believes X-Forwarded-For / X-Real-IP only when the
// request arrived from a configured proxy; anything else falls back to the
// peer address so clients cannot rotate their apparent IP.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
}

// NewTrustedProxyExtractor creates an extractor with the given trust config.
func NewTrustedProxyExtractor(config TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{config: config}
}

// ExtractIP resolves the client IP. Forwarding headers are consulted only
// for trusted sources, X-Forwarded-For first (leftmost IP), then X-Real-IP,
// then the peer address.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.config.Enabled {
		return extractIPFromAddr(r.RemoteAddr)
	}

	if !e.config.IsTrusted(r.RemoteAddr) {
		// 信頼していない送信元からのヘッダーは偽装の可能性がある
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted proxy attempting to set X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip, nil
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String(), nil
		}
	}
	return extractIPFromAddr(r.RemoteAddr)
}

// extractIPFromAddr strips the port from "host:port"; a bare IP passes
// through unchanged.
func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(addr); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}

// parseFirstIP returns the leftmost IP of a comma-separated
// X-Forwarded-For value ("client, proxy1, proxy2"), or "" when it is not a
// valid IP.
func parseFirstIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
