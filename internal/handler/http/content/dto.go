// Package content provides HTTP handlers for the aggregated content
// endpoints: articles, achievements, and services.
package content

import (
	"time"

	"portfolio-backend/internal/domain/entity"
)

// DTO represents the JSON structure for a merged content item.
type DTO struct {
	ID          string             `json:"id" example:"go-concurrency"`
	Title       string             `json:"title" example:"Go Concurrency Patterns"`
	Excerpt     string             `json:"excerpt,omitempty" example:"Bounded worker pools and pipelines."`
	URL         string             `json:"url" example:"/articles/go-concurrency"`
	ImageURL    string             `json:"image_url,omitempty" example:"/images/go-concurrency.png"`
	Category    string             `json:"category,omitempty" example:"Engineering"`
	Tags        []string           `json:"tags,omitempty" example:"go,concurrency"`
	Platform    string             `json:"platform" example:"local"`
	Sources     []entity.SourceRef `json:"sources"`
	PublishedAt time.Time          `json:"published_at" example:"2026-03-01T00:00:00Z"`
	Views       int64              `json:"views" example:"120"`
	Likes       int64              `json:"likes" example:"14"`
}

// toDTO converts a merged content item to its transfer representation.
func toDTO(item entity.MergedContentItem) DTO {
	return DTO{
		ID:          item.ID,
		Title:       item.Title,
		Excerpt:     item.Excerpt,
		URL:         item.URL,
		ImageURL:    item.ImageURL,
		Category:    item.Category,
		Tags:        item.Tags,
		Platform:    string(item.Platform),
		Sources:     item.Sources,
		PublishedAt: item.PublishedAt,
		Views:       item.Views,
		Likes:       item.Likes,
	}
}
