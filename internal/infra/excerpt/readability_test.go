package excerpt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// testConfig returns a config that permits requests to httptest servers,
// which listen on loopback addresses.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DenyPrivateIPs = false
	cfg.Timeout = 2 * time.Second
	return cfg
}

func articlePage(body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Test Article</title></head>
<body>
<article>
<h1>Test Article</h1>
%s
</article>
</body>
</html>`, body)
}

func TestFetchExcerptExtractsText(t *testing.T) {
	paragraphs := strings.Repeat("<p>Go makes concurrent servers straightforward to build and reason about. "+
		"Channels and goroutines compose into pipelines that stay readable.</p>\n", 5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articlePage(paragraphs)))
	}))
	defer srv.Close()

	fetcher := NewReadabilityFetcher(testConfig())
	excerpt, err := fetcher.FetchExcerpt(context.Background(), srv.URL+"/post")
	if err != nil {
		t.Fatalf("FetchExcerpt() error = %v", err)
	}

	if excerpt == "" {
		t.Fatal("expected non-empty excerpt")
	}
	if !strings.Contains(excerpt, "concurrent servers") {
		t.Errorf("excerpt missing article text: %q", excerpt)
	}
	if len([]rune(excerpt)) > maxExcerptRunes {
		t.Errorf("excerpt length = %d runes, want <= %d", len([]rune(excerpt)), maxExcerptRunes)
	}
}

func TestFetchExcerptDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	fetcher := NewReadabilityFetcher(cfg)

	excerpt, err := fetcher.FetchExcerpt(context.Background(), "http://127.0.0.1:1/unreachable")
	if err != nil {
		t.Fatalf("FetchExcerpt() error = %v", err)
	}
	if excerpt != "" {
		t.Errorf("expected empty excerpt when disabled, got %q", excerpt)
	}
}

func TestFetchExcerptRejectsPrivateIP(t *testing.T) {
	cfg := testConfig()
	cfg.DenyPrivateIPs = true
	fetcher := NewReadabilityFetcher(cfg)

	_, err := fetcher.FetchExcerpt(context.Background(), "http://127.0.0.1/article")
	if !errors.Is(err, ErrPrivateIP) {
		t.Errorf("FetchExcerpt() error = %v, want ErrPrivateIP", err)
	}
}

func TestFetchExcerptNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fetcher := NewReadabilityFetcher(testConfig())
	if _, err := fetcher.FetchExcerpt(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatal("FetchExcerpt() error = nil, want error for 404 response")
	}
}

func TestFetchExcerptBodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articlePage(strings.Repeat("<p>padding</p>", 500))))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxBodySize = 1024
	fetcher := NewReadabilityFetcher(cfg)

	_, err := fetcher.FetchExcerpt(context.Background(), srv.URL+"/big")
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Errorf("FetchExcerpt() error = %v, want ErrBodyTooLarge", err)
	}
}

func TestToExcerpt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "whitespace collapsed",
			in:   "line one\n\n  line   two",
			want: "line one line two",
		},
		{
			name: "short text unchanged",
			in:   "short summary",
			want: "short summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toExcerpt(tt.in); got != tt.want {
				t.Errorf("toExcerpt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToExcerptTruncatesAtRuneBoundary(t *testing.T) {
	long := strings.Repeat("日本語のテキスト ", 100)
	got := toExcerpt(long)

	if runes := len([]rune(got)); runes > maxExcerptRunes {
		t.Errorf("excerpt length = %d runes, want <= %d", runes, maxExcerptRunes)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated excerpt should end with ellipsis, got %q", got[len(got)-12:])
	}
}
