package content

import (
	"log/slog"
	"net/http"

	"portfolio-backend/internal/common/pagination"
	"portfolio-backend/internal/usecase/catalogue"
)

// Register registers the content collection endpoints with the given mux.
func Register(mux *http.ServeMux, svc *catalogue.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /api/articles", ListHandler{
		Collection:    svc.Articles,
		Name:          "articles",
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /api/achievements", ListHandler{
		Collection:    svc.Achievements,
		Name:          "achievements",
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /api/services", ListHandler{
		Collection:    svc.Services,
		Name:          "services",
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
}
