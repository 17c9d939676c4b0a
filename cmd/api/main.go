package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"portfolio-backend/internal/common/pagination"
	"portfolio-backend/internal/domain/entity"
	catinfra "portfolio-backend/internal/infra/catalogue"
	"portfolio-backend/internal/infra/excerpt"
	"portfolio-backend/internal/infra/feed"
	"portfolio-backend/internal/infra/mailer"
	"portfolio-backend/internal/observability/logging"
	"portfolio-backend/internal/observability/tracing"
	catUC "portfolio-backend/internal/usecase/catalogue"
	"portfolio-backend/internal/usecase/submit"
	"portfolio-backend/pkg/config"

	hhttp "portfolio-backend/internal/handler/http"
	"portfolio-backend/internal/handler/http/content"
	"portfolio-backend/internal/handler/http/middleware"
	"portfolio-backend/internal/handler/http/requestid"
	"portfolio-backend/internal/handler/http/submission"
)

// maxRequestBody bounds incoming request bodies. Order submissions carry up
// to 15MB of attachments plus multipart framing, so this is well above the
// JSON endpoints' needs.
const maxRequestBody = 20 << 20

func main() {
	// .env は開発環境用。無ければ環境変数をそのまま使う。
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	version := getVersion()

	catalogue := loadCatalogue(logger)
	sources := buildSources(logger)
	mail, mailerKind := buildMailer(logger)
	submitSvc := buildSubmitService(logger, mail, mailerKind)

	fetchTimeout := config.GetEnvDuration("SOURCE_FETCH_TIMEOUT", 10*time.Second)
	catSvc := catUC.NewService(catalogue, sources, fetchTimeout)

	components := setupServer(logger, serverDeps{
		Catalogue:   catalogue,
		CatalogueUC: catSvc,
		SubmitSvc:   submitSvc,
		SourceCount: len(sources),
		MailerKind:  mailerKind,
		Version:     version,
	})

	runServer(logger, components, version)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// loadCatalogue reads the local YAML content catalogue. The server cannot
// serve anything meaningful without it, so failure is fatal.
func loadCatalogue(logger *slog.Logger) *catinfra.Catalogue {
	path := config.GetEnvString("CATALOGUE_PATH", "content/catalogue.yaml")
	catalogue, err := catinfra.Load(path)
	if err != nil {
		logger.Error("failed to load content catalogue",
			slog.String("path", path),
			slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("content catalogue loaded", slog.String("path", path))
	return catalogue
}

// buildSources constructs the external content sources from environment
// configuration. Sources are optional; with none configured the catalogue
// serves local content only.
func buildSources(logger *slog.Logger) []catUC.Source {
	client := &http.Client{
		Timeout: config.GetEnvDuration("SOURCE_HTTP_TIMEOUT", 15*time.Second),
	}

	var excerpts feed.ExcerptFetcher
	excerptCfg, err := excerpt.LoadConfigFromEnv()
	if err != nil {
		logger.Error("invalid excerpt configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if excerptCfg.Enabled {
		excerpts = excerpt.NewReadabilityFetcher(excerptCfg)
		logger.Info("excerpt enrichment enabled",
			slog.Duration("timeout", excerptCfg.Timeout))
	}

	var sources []catUC.Source

	if feedURL := os.Getenv("MEDIUM_FEED_URL"); feedURL != "" {
		if err := validateSourceURL("MEDIUM_FEED_URL", feedURL); err != nil {
			logger.Error("invalid source URL", slog.Any("error", err))
			os.Exit(1)
		}
		sources = append(sources, feed.NewRSSFetcher(feed.RSSConfig{
			Platform: entity.PlatformMedium,
			FeedURL:  feedURL,
			Category: config.GetEnvString("MEDIUM_CATEGORY", "Article"),
		}, client, excerpts))
		logger.Info("medium source configured", slog.String("feed_url", feedURL))
	}

	if pageURL := os.Getenv("SUBSTACK_PAGE_URL"); pageURL != "" {
		if err := validateSourceURL("SUBSTACK_PAGE_URL", pageURL); err != nil {
			logger.Error("invalid source URL", slog.Any("error", err))
			os.Exit(1)
		}
		sources = append(sources, feed.NewHTMLFetcher(feed.HTMLConfig{
			Platform:  entity.PlatformSubstack,
			PageURL:   pageURL,
			Category:  config.GetEnvString("SUBSTACK_CATEGORY", "Article"),
			Selectors: substackSelectors(pageURL),
		}, client))
		logger.Info("substack source configured", slog.String("page_url", pageURL))
	}

	if len(sources) == 0 {
		logger.Info("no external sources configured, serving local catalogue only")
	}
	return sources
}

// validateSourceURL rejects misconfigured source URLs before any fetch is
// attempted. A non-HTTP scheme or a private network target fails startup
// instead of turning each aggregation request into an SSRF attempt.
func validateSourceURL(name, rawURL string) error {
	if err := entity.ValidateURL(rawURL); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// substackSelectors returns the selector set for a Substack archive page.
func substackSelectors(pageURL string) feed.SelectorConfig {
	return feed.SelectorConfig{
		ItemSelector:    "div.post-preview",
		TitleSelector:   "a.post-preview-title",
		URLSelector:     "a.post-preview-title",
		ExcerptSelector: "a.post-preview-description",
		DateSelector:    "time",
		DateFormat:      "Jan 2, 2006",
		URLPrefix:       pageURL,
	}
}

// buildMailer selects the email transport. A configured API key selects the
// provider client; otherwise submissions are logged and dropped, which keeps
// local development working without credentials.
func buildMailer(logger *slog.Logger) (mailer.Mailer, string) {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		logger.Warn("RESEND_API_KEY not set, email dispatch is disabled")
		return mailer.NewNoopMailer(), "noop"
	}

	m := mailer.NewResendMailer(mailer.ResendConfig{
		APIKey:  apiKey,
		Timeout: config.GetEnvDuration("MAIL_TIMEOUT", 10*time.Second),
	})
	logger.Info("email provider configured")
	return m, "resend"
}

// buildSubmitService wires the submission pipeline. Sender and owner
// addresses are mandatory when a real provider is configured.
func buildSubmitService(logger *slog.Logger, m mailer.Mailer, mailerKind string) *submit.Service {
	cfg := submit.Config{
		From:       os.Getenv("MAIL_FROM"),
		OwnerEmail: os.Getenv("OWNER_EMAIL"),
		SiteName:   config.GetEnvString("SITE_NAME", "Portfolio"),
	}

	if mailerKind == "resend" {
		if cfg.From == "" {
			logger.Error("MAIL_FROM must be set when email dispatch is enabled")
			os.Exit(1)
		}
		if cfg.OwnerEmail == "" {
			logger.Error("OWNER_EMAIL must be set when email dispatch is enabled")
			os.Exit(1)
		}
	}

	renderer, err := submit.NewRenderer(cfg.SiteName)
	if err != nil {
		logger.Error("failed to build email templates", slog.Any("error", err))
		os.Exit(1)
	}

	return submit.NewService(m, renderer, cfg)
}

// serverDeps bundles the collaborators setupServer needs.
type serverDeps struct {
	Catalogue   *catinfra.Catalogue
	CatalogueUC *catUC.Service
	SubmitSvc   *submit.Service
	SourceCount int
	MailerKind  string
	Version     string
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler       http.Handler
	SubmitLimiter *middleware.RateLimiter
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(logger *slog.Logger, deps serverDeps) *ServerComponents {
	// Load trusted proxy configuration for IP extraction
	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var ipExtractor middleware.IPExtractor
	if proxyConfig.Enabled {
		ipExtractor = middleware.NewTrustedProxyExtractor(*proxyConfig)
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		ipExtractor = &middleware.RemoteAddrExtractor{}
		logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
	}

	// レート制限: 送信エンドポイントは1分間に5リクエストまで
	submitLimit := config.GetEnvInt("SUBMIT_RATE_LIMIT", 5)
	submitWindow := config.GetEnvDuration("SUBMIT_RATE_WINDOW", 1*time.Minute)
	submitLimiter := middleware.NewRateLimiter(submitLimit, submitWindow, ipExtractor)

	paginationCfg := pagination.LoadFromEnv()

	mux := http.NewServeMux()
	content.Register(mux, deps.CatalogueUC, paginationCfg, logger)
	submission.Register(mux, deps.SubmitSvc, logger, submitLimiter.Middleware)

	// ヘルスチェックエンドポイント
	mux.Handle("/health", &hhttp.HealthHandler{
		Catalogue:   deps.Catalogue,
		SourceCount: deps.SourceCount,
		MailerKind:  deps.MailerKind,
		Version:     deps.Version,
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{Catalogue: deps.Catalogue})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	return &ServerComponents{
		Handler:       applyMiddleware(logger, mux),
		SubmitLimiter: submitLimiter,
	}
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: CORS → Request ID → Tracing → Recovery → Logging → Input Validation →
// Body Limit → Timeout → Metrics
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	corsConfig.Logger = &middleware.SlogAdapter{Logger: logger}

	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.Validator.GetAllowedOrigins()),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Any("allowed_headers", corsConfig.AllowedHeaders),
		slog.Int("max_age", corsConfig.MaxAge))

	requestTimeout := config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)

	// Apply in reverse order (innermost to outermost)
	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.LimitRequestBody(maxRequestBody)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(*corsConfig)(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupInterval := config.GetEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute)
	if err := config.ValidateDurationRange(cleanupInterval, time.Minute, time.Hour); err != nil {
		logger.Warn("invalid rate limit cleanup interval, using default",
			slog.Any("error", err))
		cleanupInterval = 5 * time.Minute
	}
	go hhttp.StartRateLimitCleanup(ctx, components.SubmitLimiter, cleanupInterval, "submission")

	addr := ":" + config.GetEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Cancel background goroutines (rate limit cleanup)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
