package catalogue

import (
	"sort"
	"strings"

	"portfolio-backend/internal/domain/entity"
)

// SortKey selects the ordering applied to a result set.
type SortKey string

const (
	SortByDate  SortKey = "date"
	SortByViews SortKey = "views"
	SortByLikes SortKey = "likes"
)

// ParseSortKey maps a query parameter value onto a SortKey,
// defaulting to date order for unknown or empty values.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "views":
		return SortByViews
	case "likes":
		return SortByLikes
	default:
		return SortByDate
	}
}

// FilterByCategory keeps items matching the given category. The value "All"
// (case-insensitive) or an empty string returns the input unchanged. An item
// matches when its Category equals the value exactly, or when any of its tags
// equals the value case-insensitively.
func FilterByCategory(items []entity.MergedContentItem, category string) []entity.MergedContentItem {
	if category == "" || strings.EqualFold(category, "All") {
		return items
	}

	out := make([]entity.MergedContentItem, 0, len(items))
	for _, item := range items {
		if item.Category == category || hasTagFold(item.Tags, category) {
			out = append(out, item)
		}
	}
	return out
}

func hasTagFold(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

// Search keeps items containing the query as a case-insensitive substring of
// the title, the excerpt, or any tag. An empty query returns the input
// unchanged. Relative order is preserved and the result never grows.
func Search(items []entity.MergedContentItem, query string) []entity.MergedContentItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	q := strings.ToLower(query)

	out := make([]entity.MergedContentItem, 0, len(items))
	for _, item := range items {
		if matchesQuery(&item, q) {
			out = append(out, item)
		}
	}
	return out
}

func matchesQuery(item *entity.MergedContentItem, q string) bool {
	if strings.Contains(strings.ToLower(item.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Excerpt), q) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// SortBy orders items by the given key, descending. The sort is stable so
// items with equal keys keep their input order.
func SortBy(items []entity.MergedContentItem, key SortKey) []entity.MergedContentItem {
	out := make([]entity.MergedContentItem, len(items))
	copy(out, items)

	switch key {
	case SortByViews:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	case SortByLikes:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	}
	return out
}

// Paginate returns the first shown items of the result set.
// A shown value at or beyond the set length returns the whole set.
func Paginate(items []entity.MergedContentItem, shown int) []entity.MergedContentItem {
	if shown < 0 {
		shown = 0
	}
	if shown > len(items) {
		shown = len(items)
	}
	return items[:shown]
}

// NextShown advances the load-more cursor by one page, capped at total.
func NextShown(shown, pageSize, total int) int {
	next := shown + pageSize
	if next > total {
		next = total
	}
	return next
}
