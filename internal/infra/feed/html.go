package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portfolio-backend/internal/domain/entity"
	"portfolio-backend/internal/resilience/circuitbreaker"
	"portfolio-backend/internal/resilience/retry"

	"github.com/PuerkitoBio/goquery"
	"github.com/sony/gobreaker"
)

const (
	maxBodySize = 10 * 1024 * 1024 // 10MB
)

// SelectorConfig describes how to locate content items in a listing page.
type SelectorConfig struct {
	// ItemSelector matches one element per content item.
	ItemSelector string

	// TitleSelector matches the title element within an item.
	TitleSelector string

	// URLSelector matches the link element within an item; its href is used.
	URLSelector string

	// ExcerptSelector matches the summary element within an item (optional).
	ExcerptSelector string

	// DateSelector matches the publication date element within an item.
	DateSelector string

	// DateFormat is the Go reference layout for the date text.
	DateFormat string

	// URLPrefix is prepended to relative item URLs.
	URLPrefix string
}

// HTMLConfig describes one scraped content source.
type HTMLConfig struct {
	Platform  entity.Platform
	PageURL   string
	Category  string
	Selectors SelectorConfig
}

// HTMLFetcher pulls content items from a listing page for platforms that
// expose no feed. It uses HTML parsing with goquery to extract items using
// CSS selectors.
type HTMLFetcher struct {
	config         HTMLConfig
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewHTMLFetcher creates a new HTMLFetcher for one configured source.
// It automatically configures circuit breaker and retry logic for resilience.
func NewHTMLFetcher(config HTMLConfig, client *http.Client) *HTMLFetcher {
	return &HTMLFetcher{
		config:         config,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.WebScraperConfig()),
		retryConfig:    retry.WebScraperConfig(),
	}
}

// Platform implements the content source interface.
func (h *HTMLFetcher) Platform() entity.Platform {
	return h.config.Platform
}

// Fetch retrieves and parses content items from the configured page.
func (h *HTMLFetcher) Fetch(ctx context.Context) ([]entity.ContentItem, error) {
	var items []entity.ContentItem

	retryErr := retry.WithBackoff(ctx, h.retryConfig, func() error {
		cbResult, err := h.circuitBreaker.Execute(func() (interface{}, error) {
			return h.doFetch(ctx)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("html fetch circuit breaker open, request rejected",
					slog.String("platform", string(h.config.Platform)),
					slog.String("url", h.config.PageURL),
					slog.String("state", h.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		items = cbResult.([]entity.ContentItem)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return items, nil
}

// doFetch performs the actual scraping without retry or circuit breaker.
func (h *HTMLFetcher) doFetch(ctx context.Context) ([]entity.ContentItem, error) {
	if err := validatePageURL(h.config.PageURL); err != nil {
		return nil, fmt.Errorf("URL validation failed: %w", err)
	}

	doc, err := h.fetchHTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch HTML failed: %w", err)
	}

	items := h.extractItems(doc)
	if len(items) == 0 {
		return nil, fmt.Errorf("no items found with selector: %s", h.config.Selectors.ItemSelector)
	}

	return items, nil
}

// fetchHTML fetches and parses HTML from the configured page URL.
func (h *HTMLFetcher) fetchHTML(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.config.PageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	// Limit body size to prevent memory exhaustion
	limitedReader := io.LimitReader(resp.Body, maxBodySize)

	doc, err := goquery.NewDocumentFromReader(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	return doc, nil
}

// extractItems extracts content items from the document using CSS selectors.
func (h *HTMLFetcher) extractItems(doc *goquery.Document) []entity.ContentItem {
	sel := h.config.Selectors
	var items []entity.ContentItem

	doc.Find(sel.ItemSelector).Each(func(i int, itemEl *goquery.Selection) {
		title := strings.TrimSpace(itemEl.Find(sel.TitleSelector).Text())
		if title == "" {
			slog.Debug("skipping item with empty title", slog.Int("index", i))
			return
		}

		itemURL := ""
		if sel.URLSelector != "" {
			if href, exists := itemEl.Find(sel.URLSelector).Attr("href"); exists {
				itemURL = strings.TrimSpace(href)
			}
		}
		if itemURL == "" {
			slog.Debug("skipping item with empty URL", slog.Int("index", i), slog.String("title", title))
			return
		}
		itemURL = makeAbsoluteURL(itemURL, sel.URLPrefix)

		excerpt := ""
		if sel.ExcerptSelector != "" {
			excerpt = truncateExcerpt(strings.TrimSpace(itemEl.Find(sel.ExcerptSelector).Text()), maxExcerptLength)
		}

		dateStr := strings.TrimSpace(itemEl.Find(sel.DateSelector).Text())
		publishedAt := parseDate(dateStr, sel.DateFormat)

		items = append(items, entity.ContentItem{
			ID:          itemURL,
			Title:       title,
			Excerpt:     excerpt,
			URL:         itemURL,
			Category:    h.config.Category,
			Platform:    h.config.Platform,
			PublishedAt: publishedAt,
		})
	})

	return items
}

// validatePageURL checks if a URL is safe to fetch (SSRF prevention).
// For testing purposes, URLs with port 127.0.0.1:xxxxx (httptest servers) are allowed.
func validatePageURL(urlStr string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s (only http/https allowed)", u.Scheme)
	}

	// Allow httptest servers (127.0.0.1 with ephemeral ports for testing)
	if u.Hostname() == "127.0.0.1" && u.Port() != "" {
		portNum := 0
		if _, err := fmt.Sscanf(u.Port(), "%d", &portNum); err == nil {
			if portNum >= 32768 && portNum <= 65535 {
				return nil
			}
		}
	}

	ips, err := net.LookupIP(u.Hostname())
	if err != nil {
		return fmt.Errorf("DNS lookup failed: %w", err)
	}

	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("private IP address detected: %s (SSRF prevention)", ip)
		}
	}

	return nil
}

// isPrivateIP checks if an IP address is private (RFC 1918, loopback, link-local).
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() {
		return true
	}
	if ip.IsPrivate() {
		return true
	}
	if ip.IsLinkLocalUnicast() {
		return true
	}
	return false
}

// parseDate parses a date string using the given format.
// Falls back to current time if parsing fails.
func parseDate(dateStr string, format string) time.Time {
	if dateStr == "" {
		return time.Now()
	}

	if format == "" {
		format = "Jan 2, 2006"
	}

	t, err := time.Parse(format, dateStr)
	if err != nil {
		formats := []string{
			"2006-01-02",
			"2006-01-02T15:04:05Z",
			time.RFC3339,
			"Jan 2, 2006",
			"January 2, 2006",
		}

		for _, layout := range formats {
			if t, err := time.Parse(layout, dateStr); err == nil {
				return t
			}
		}

		slog.Warn("failed to parse date, using current time",
			slog.String("date_str", dateStr),
			slog.String("format", format))
		return time.Now()
	}

	return t
}

// makeAbsoluteURL converts a relative URL to absolute using the given prefix.
func makeAbsoluteURL(urlStr string, prefix string) string {
	if strings.HasPrefix(urlStr, "http://") || strings.HasPrefix(urlStr, "https://") {
		return urlStr
	}

	if prefix == "" {
		return urlStr
	}

	prefix = strings.TrimRight(prefix, "/")
	urlStr = strings.TrimLeft(urlStr, "/")

	return prefix + "/" + urlStr
}
