// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as ContentItem and the form
// submission types, along with their validation rules and domain-specific errors.
package entity

import "time"

// Platform identifies where a piece of content was published.
type Platform string

const (
	PlatformLocal    Platform = "local"
	PlatformMedium   Platform = "medium"
	PlatformSubstack Platform = "substack"
)

// ContentItem represents a single content record from one platform.
// The same logical piece of content may appear once per platform it is
// published on; ID is only unique within its platform.
type ContentItem struct {
	ID          string
	Title       string
	Excerpt     string
	URL         string
	ImageURL    string
	Category    string
	Tags        []string
	Platform    Platform
	PublishedAt time.Time

	// Engagement counters, populated for local items only. External
	// platforms do not expose these through their feeds.
	Views int64
	Likes int64
}

// SourceRef records one platform a merged item was found on.
type SourceRef struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
}

// MergedContentItem is a deduplicated content record aggregating every
// platform the item appears on. Field values come from the first item seen
// for the merge key; later duplicates contribute only their source entry.
// Sources is append-only and holds at most one entry per platform,
// in first-seen order.
type MergedContentItem struct {
	ContentItem
	Sources []SourceRef
}

// HasPlatform reports whether the merged item already carries a source
// entry for the given platform.
func (m *MergedContentItem) HasPlatform(p Platform) bool {
	for _, s := range m.Sources {
		if s.Platform == p {
			return true
		}
	}
	return false
}
