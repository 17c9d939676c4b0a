package catalogue

import (
	"strings"

	"portfolio-backend/internal/domain/entity"
)

// normalizeTitle produces the merge key for a content item.
// Matching is deliberately literal: case and surrounding whitespace are
// ignored, internal punctuation is not.
func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Merge collapses items that represent the same logical content published on
// multiple platforms. Items are grouped by normalized title. The first item
// seen for a key supplies every field of the merged record; later duplicates
// contribute only a source reference, and only if their platform is not
// already present. Output order is first-seen order, so merging is
// deterministic and idempotent.
func Merge(items []entity.ContentItem) []entity.MergedContentItem {
	merged := make([]entity.MergedContentItem, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		key := normalizeTitle(item.Title)

		i, seen := index[key]
		if !seen {
			index[key] = len(merged)
			merged = append(merged, entity.MergedContentItem{
				ContentItem: item,
				Sources: []entity.SourceRef{
					{Platform: item.Platform, URL: item.URL},
				},
			})
			continue
		}

		if !merged[i].HasPlatform(item.Platform) {
			merged[i].Sources = append(merged[i].Sources, entity.SourceRef{
				Platform: item.Platform,
				URL:      item.URL,
			})
		}
	}

	return merged
}
