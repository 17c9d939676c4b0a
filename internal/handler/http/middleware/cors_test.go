package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func corsHandler(origins []string) http.Handler {
	config := CORSConfig{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         3600,
		Validator:      NewWhitelistValidator(origins),
		Logger:         &NoOpLogger{},
	}
	return CORS(config)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSAllowedOrigin(t *testing.T) {
	h := corsHandler([]string{"https://portfolio.example.com"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.Header.Set("Origin", "https://portfolio.example.com")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://portfolio.example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("Allow-Credentials missing")
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	h := corsHandler([]string{"https://portfolio.example.com"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	h.ServeHTTP(rec, req)

	// The request still reaches the handler; the browser enforces the block.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want no CORS headers", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := corsHandler([]string{"https://portfolio.example.com"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/order", nil)
	req.Header.Set("Origin", "https://portfolio.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Error("Allow-Methods missing POST")
	}
	if rec.Header().Get("Access-Control-Max-Age") != "3600" {
		t.Errorf("Max-Age = %q", rec.Header().Get("Access-Control-Max-Age"))
	}
}

func TestCORSSameOriginSkipped(t *testing.T) {
	h := corsHandler([]string{"https://portfolio.example.com"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles", nil))

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want none for same-origin request", got)
	}
}

func TestWhitelistValidatorNormalization(t *testing.T) {
	v := NewWhitelistValidator([]string{"https://Portfolio.Example.com/", "", "  "})

	if !v.IsAllowed("https://portfolio.example.com") {
		t.Error("normalized origin should be allowed")
	}
	if !v.IsAllowed("HTTPS://PORTFOLIO.EXAMPLE.COM/") {
		t.Error("case and trailing slash should not matter")
	}
	if v.IsAllowed("") {
		t.Error("empty origin must be rejected")
	}
	if v.IsAllowed("https://other.example.com") {
		t.Error("unlisted origin must be rejected")
	}
	if got := len(v.GetAllowedOrigins()); got != 1 {
		t.Errorf("GetAllowedOrigins() = %d entries, want blank entries dropped", got)
	}
}

func TestLoadCORSConfigFromEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://portfolio.example.com,http://localhost:3000")
	t.Setenv("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")
	t.Setenv("CORS_ALLOWED_HEADERS", "Content-Type")
	t.Setenv("CORS_MAX_AGE", "600")

	config, err := LoadCORSConfig()
	if err != nil {
		t.Fatalf("LoadCORSConfig() error = %v", err)
	}
	if len(config.AllowedOrigins) != 2 || config.MaxAge != 600 {
		t.Errorf("config = %+v", config)
	}
	if !config.Validator.IsAllowed("http://localhost:3000") {
		t.Error("validator should allow configured origin")
	}
}

func TestLoadCORSConfigRequiresOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	if _, err := LoadCORSConfig(); err == nil {
		t.Fatal("LoadCORSConfig() error = nil, want missing-origins error")
	}
}

func TestLoadCORSConfigRejectsInvalidOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origins string
	}{
		{name: "bad scheme", origins: "ftp://example.com"},
		{name: "with path", origins: "https://example.com/app"},
		{name: "with query", origins: "https://example.com?x=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CORS_ALLOWED_ORIGINS", tt.origins)
			if _, err := LoadCORSConfig(); err == nil {
				t.Errorf("LoadCORSConfig(%q) error = nil, want error", tt.origins)
			}
		})
	}
}
