package content

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"portfolio-backend/internal/common/pagination"
	"portfolio-backend/internal/handler/http/requestid"
	"portfolio-backend/internal/handler/http/respond"
	"portfolio-backend/internal/observability/logging"
	"portfolio-backend/internal/usecase/catalogue"
)

// Collection returns one content collection viewed through a query.
// The catalogue service's Articles, Achievements, and Services methods all
// satisfy this signature.
type Collection func(ctx context.Context, q catalogue.Query) *catalogue.Result

// ListHandler serves one content collection with filtering, search, sort,
// and load-more pagination.
type ListHandler struct {
	Collection    Collection
	Name          string // collection name for logging ("articles" etc.)
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP handles a content list request.
//
// Query parameters:
//   - category: exact category or case-insensitive tag filter ("All" disables)
//   - q: free-text search over title, excerpt, and tags
//   - sort: date (default), views, or likes
//   - shown: load-more cursor; page/limit map onto it as a prefix
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"collection", h.Name,
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	q := catalogue.Query{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
		Sort:     catalogue.ParseSortKey(r.URL.Query().Get("sort")),
		Shown:    params.Shown,
	}

	logger.Info("Content list request",
		"collection", h.Name,
		"category", q.Category,
		"query", q.Search,
		"sort", string(q.Sort),
		"shown", q.Shown,
		"request_id", reqID)

	result := h.Collection(ctx, q)

	dtos := make([]DTO, 0, len(result.Items))
	for _, item := range result.Items {
		dtos = append(dtos, toDTO(item))
	}

	strategy := pagination.LoadMoreStrategy{Step: h.PaginationCfg.Step}
	response := pagination.NewResponse(dtos, strategy.BuildMetadata(params, result.Total))

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Shown)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.UpdateTotalCount(result.Total)

	logger.Info("Content list response",
		"collection", h.Name,
		"returned_count", len(dtos),
		"total", result.Total,
		"duration_ms", duration.Milliseconds(),
		"status", http.StatusOK,
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, response)
}
