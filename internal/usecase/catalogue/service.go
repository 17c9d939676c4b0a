package catalogue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"portfolio-backend/internal/domain/entity"
	"portfolio-backend/internal/observability/metrics"

	"golang.org/x/sync/errgroup"
)

const defaultFetchTimeout = 10 * time.Second

// Source fetches content items from one external publishing platform.
type Source interface {
	Platform() entity.Platform
	Fetch(ctx context.Context) ([]entity.ContentItem, error)
}

// LocalCatalogue exposes the locally authored collections loaded at startup.
type LocalCatalogue interface {
	Articles() []entity.ContentItem
	Achievements() []entity.ContentItem
	Services() []entity.ContentItem
}

// Query describes one view over a collection.
type Query struct {
	Category string
	Search   string
	Sort     SortKey
	Shown    int
}

// Result is a paginated view over a collection.
type Result struct {
	Items []entity.MergedContentItem
	Total int // matched items before pagination
	Shown int // items actually returned
}

// HasMore reports whether another load-more page exists.
func (r *Result) HasMore() bool {
	return r.Shown < r.Total
}

// Service aggregates content from the local catalogue and external sources.
// External fetch failures are absorbed: a failing source contributes nothing
// to the merged set, and the error is logged and counted, never returned.
type Service struct {
	Local        LocalCatalogue
	Sources      []Source
	FetchTimeout time.Duration
}

// NewService creates a catalogue Service over the local collections and the
// configured external sources. fetchTimeout bounds each external fetch; zero
// selects the default.
func NewService(local LocalCatalogue, sources []Source, fetchTimeout time.Duration) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Service{
		Local:        local,
		Sources:      sources,
		FetchTimeout: fetchTimeout,
	}
}

// Articles returns the merged article collection viewed through q.
// Local items come first so the local record wins every merge conflict.
func (s *Service) Articles(ctx context.Context, q Query) *Result {
	items := s.collectArticles(ctx)
	merged := Merge(items)
	metrics.RecordMergeDuplicates(len(items) - len(merged))
	return applyView(merged, q)
}

// Achievements returns the local achievements collection viewed through q.
func (s *Service) Achievements(_ context.Context, q Query) *Result {
	return applyView(Merge(s.Local.Achievements()), q)
}

// Services returns the local services collection viewed through q.
func (s *Service) Services(_ context.Context, q Query) *Result {
	return applyView(Merge(s.Local.Services()), q)
}

// applyView runs the fixed view pipeline. Pagination is always last so the
// shown window never hides matching items from the total count.
func applyView(items []entity.MergedContentItem, q Query) *Result {
	items = FilterByCategory(items, q.Category)
	items = Search(items, q.Search)
	items = SortBy(items, q.Sort)

	total := len(items)
	page := Paginate(items, q.Shown)
	return &Result{Items: page, Total: total, Shown: len(page)}
}

// collectArticles gathers article items from the local catalogue and every
// external source concurrently. Source order in the output is stable: local
// first, then sources in configuration order regardless of completion order.
func (s *Service) collectArticles(ctx context.Context) []entity.ContentItem {
	logger := slog.Default()

	perSource := make([][]entity.ContentItem, len(s.Sources))
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	for i, src := range s.Sources {
		i, src := i, src
		eg.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(egCtx, s.FetchTimeout)
			defer cancel()

			start := time.Now()
			items, err := src.Fetch(fetchCtx)
			duration := time.Since(start)

			platform := string(src.Platform())
			metrics.RecordSourceFetch(platform, err == nil, len(items), duration)

			if err != nil {
				// 外部ソースの失敗は吸収する
				logger.Warn("source fetch failed, continuing without it",
					slog.String("platform", platform),
					slog.Duration("duration", duration),
					slog.Any("error", err))
				return nil
			}

			mu.Lock()
			perSource[i] = items
			mu.Unlock()

			logger.Debug("source fetch completed",
				slog.String("platform", platform),
				slog.Int("items", len(items)),
				slog.Duration("duration", duration))
			return nil
		})
	}
	// Goroutines only return nil; Wait is for completion, not errors.
	_ = eg.Wait()

	out := make([]entity.ContentItem, 0, len(s.Local.Articles())+64)
	out = append(out, s.Local.Articles()...)
	for _, items := range perSource {
		out = append(out, items...)
	}
	return out
}
