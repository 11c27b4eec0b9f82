package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"dinescan-service/internal/config"
	"dinescan-service/internal/middleware"
	resHnd "dinescan-service/internal/resolve/handler"
	"dinescan-service/internal/resolve/service"
	"dinescan-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, pipe *service.Pipeline) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	r.Post("/api/recognize", resHnd.Recognize(cfg, logger, pipe))
	r.Post("/api/compare", resHnd.Compare(cfg, logger, pipe))
	r.Post("/api/compare/batch", resHnd.BatchCompare(cfg, logger))

	return r
}
