package catalogue

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-backend/internal/domain/entity"
)

type stubLocal struct {
	articles     []entity.ContentItem
	achievements []entity.ContentItem
	services     []entity.ContentItem
}

func (s *stubLocal) Articles() []entity.ContentItem     { return s.articles }
func (s *stubLocal) Achievements() []entity.ContentItem { return s.achievements }
func (s *stubLocal) Services() []entity.ContentItem     { return s.services }

type stubSource struct {
	platform entity.Platform
	items    []entity.ContentItem
	err      error
}

func (s *stubSource) Platform() entity.Platform { return s.platform }

func (s *stubSource) Fetch(_ context.Context) ([]entity.ContentItem, error) {
	return s.items, s.err
}

func TestArticlesMergesLocalAndExternal(t *testing.T) {
	local := &stubLocal{
		articles: []entity.ContentItem{
			{Title: "Shared Title", URL: "/articles/shared", Excerpt: "local wins", Platform: entity.PlatformLocal, PublishedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	medium := &stubSource{
		platform: entity.PlatformMedium,
		items: []entity.ContentItem{
			{Title: "shared title", URL: "https://medium.com/shared", Excerpt: "medium copy", Platform: entity.PlatformMedium},
			{Title: "Medium Only", URL: "https://medium.com/only", Platform: entity.PlatformMedium, PublishedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	svc := NewService(local, []Source{medium}, 0)
	res := svc.Articles(context.Background(), Query{Shown: 10})

	if res.Total != 2 {
		t.Fatalf("Total = %d, want 2", res.Total)
	}

	// Local items are collected first, so they win the merge.
	shared := res.Items[0]
	if shared.Excerpt != "local wins" {
		t.Errorf("shared excerpt = %q, want local fields kept", shared.Excerpt)
	}
	if len(shared.Sources) != 2 {
		t.Errorf("shared sources = %d, want 2", len(shared.Sources))
	}
	if !shared.HasPlatform(entity.PlatformMedium) {
		t.Error("shared item missing medium source")
	}
}

func TestArticlesAbsorbsSourceFailure(t *testing.T) {
	local := &stubLocal{
		articles: []entity.ContentItem{
			{Title: "Local Article", Platform: entity.PlatformLocal},
		},
	}
	failing := &stubSource{
		platform: entity.PlatformSubstack,
		err:      errors.New("connection refused"),
	}
	working := &stubSource{
		platform: entity.PlatformMedium,
		items: []entity.ContentItem{
			{Title: "Medium Article", Platform: entity.PlatformMedium},
		},
	}

	svc := NewService(local, []Source{failing, working}, 0)
	res := svc.Articles(context.Background(), Query{Shown: 10})

	if res.Total != 2 {
		t.Fatalf("Total = %d, want 2 (failing source contributes nothing, others survive)", res.Total)
	}
}

func TestArticlesViewPipeline(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC) }
	local := &stubLocal{
		articles: []entity.ContentItem{
			{Title: "Go Generics", Category: "Engineering", PublishedAt: day(1), Platform: entity.PlatformLocal},
			{Title: "Go Modules", Category: "Engineering", PublishedAt: day(3), Platform: entity.PlatformLocal},
			{Title: "Brand Refresh", Category: "Design", PublishedAt: day(2), Platform: entity.PlatformLocal},
		},
	}

	svc := NewService(local, nil, 0)
	res := svc.Articles(context.Background(), Query{Category: "Engineering", Sort: SortByDate, Shown: 1})

	if res.Total != 2 {
		t.Fatalf("Total = %d, want 2 (total counts matches before pagination)", res.Total)
	}
	if res.Shown != 1 {
		t.Fatalf("Shown = %d, want 1", res.Shown)
	}
	if res.Items[0].Title != "Go Modules" {
		t.Errorf("first item = %q, want newest engineering article", res.Items[0].Title)
	}
	if !res.HasMore() {
		t.Error("HasMore() = false, want true")
	}
}

func TestAchievementsAndServicesUseLocalOnly(t *testing.T) {
	local := &stubLocal{
		achievements: []entity.ContentItem{
			{Title: "AWS Certification", Platform: entity.PlatformLocal},
		},
		services: []entity.ContentItem{
			{Title: "Backend Development", Platform: entity.PlatformLocal},
			{Title: "Code Review", Platform: entity.PlatformLocal},
		},
	}
	// A source that would fail loudly if consulted.
	svc := NewService(local, []Source{&stubSource{platform: entity.PlatformMedium, err: errors.New("boom")}}, 0)

	ach := svc.Achievements(context.Background(), Query{Shown: 10})
	if ach.Total != 1 {
		t.Errorf("achievements Total = %d, want 1", ach.Total)
	}

	srv := svc.Services(context.Background(), Query{Shown: 10})
	if srv.Total != 2 {
		t.Errorf("services Total = %d, want 2", srv.Total)
	}
}
