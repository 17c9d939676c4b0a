// Package feed provides fetchers that pull the site owner's published
// content from external platforms and normalize it into content items.
// It uses the gofeed library to parse feed content with reliability patterns.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"portfolio-backend/internal/domain/entity"
	"portfolio-backend/internal/resilience/circuitbreaker"
	"portfolio-backend/internal/resilience/retry"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
)

const userAgent = "PortfolioBot/1.0"

// minExcerptLength is the shortest feed description considered usable.
// Shorter descriptions trigger excerpt enrichment when it is configured.
const minExcerptLength = 40

// maxExcerptLength bounds excerpts before they reach the UI.
const maxExcerptLength = 280

// ExcerptFetcher extracts a plain-text excerpt from an article page.
// It is optional; feed descriptions are used as-is when no fetcher is set.
type ExcerptFetcher interface {
	FetchExcerpt(ctx context.Context, url string) (string, error)
}

// RSSConfig describes one RSS/Atom content source.
type RSSConfig struct {
	// Platform tags every item produced by this source.
	Platform entity.Platform

	// FeedURL is the RSS/Atom feed location.
	FeedURL string

	// Category is assigned to every item; feeds do not carry the site's
	// category taxonomy.
	Category string
}

// RSSFetcher pulls content items from an RSS/Atom feed using gofeed.
// It includes circuit breaker and retry logic for improved reliability.
type RSSFetcher struct {
	config         RSSConfig
	client         *http.Client
	excerpts       ExcerptFetcher
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSSFetcher creates a new RSSFetcher for one configured source.
// excerpts may be nil to disable excerpt enrichment.
func NewRSSFetcher(config RSSConfig, client *http.Client, excerpts ExcerptFetcher) *RSSFetcher {
	return &RSSFetcher{
		config:         config,
		client:         client,
		excerpts:       excerpts,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Platform implements the content source interface.
func (f *RSSFetcher) Platform() entity.Platform {
	return f.config.Platform
}

// Fetch retrieves and parses the configured feed.
// It uses circuit breaker and retry logic for improved reliability.
func (f *RSSFetcher) Fetch(ctx context.Context) ([]entity.ContentItem, error) {
	var items []entity.ContentItem

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("platform", string(f.config.Platform)),
					slog.String("url", f.config.FeedURL),
					slog.String("state", f.circuitBreaker.State().String()))
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

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context) ([]entity.ContentItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = f.client

	parsed, err := fp.ParseURLWithContext(f.config.FeedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]entity.ContentItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		pubAt := time.Now()
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		}

		id := it.GUID
		if id == "" {
			id = it.Link
		}

		items = append(items, entity.ContentItem{
			ID:          id,
			Title:       it.Title,
			Excerpt:     f.excerpt(ctx, it),
			URL:         it.Link,
			ImageURL:    imageURL(it),
			Category:    f.config.Category,
			Tags:        it.Categories,
			Platform:    f.config.Platform,
			PublishedAt: pubAt,
		})
	}

	return items, nil
}

// excerpt picks the feed description, enriched from the article page when
// the description is too short to display. Enrichment failure falls back to
// whatever the feed provided.
func (f *RSSFetcher) excerpt(ctx context.Context, it *gofeed.Item) string {
	// Descriptionを優先、なければContentを使用
	desc := strings.TrimSpace(it.Description)
	if desc == "" {
		desc = strings.TrimSpace(it.Content)
	}

	if f.excerpts != nil && len(desc) < minExcerptLength && it.Link != "" {
		if enriched, err := f.excerpts.FetchExcerpt(ctx, it.Link); err == nil && len(enriched) > len(desc) {
			desc = enriched
		}
	}

	return truncateExcerpt(desc, maxExcerptLength)
}

func imageURL(it *gofeed.Item) string {
	if it.Image != nil {
		return it.Image.URL
	}
	return ""
}

// truncateExcerpt cuts text at a rune boundary and marks the continuation.
func truncateExcerpt(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength-3]) + "..."
}
