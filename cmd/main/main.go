package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinescan-service/internal/config"
	"dinescan-service/internal/ocr"
	"dinescan-service/internal/places"
	"dinescan-service/internal/resolve/service"
	serverhttp "dinescan-service/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	// all external clients are built here and injected; nothing is ambient
	directory := places.NewHTTPClient(cfg.PlacesBaseURL, cfg.PlacesAPIKey, cfg.HTTPTimeout)
	ocrClient := ocr.NewHTTPClient(cfg.OCRBaseURL, cfg.HTTPTimeout)
	pipe := service.NewPipeline(ocrClient, directory, cfg.SearchRadiusM, cfg.DefaultBudget, logger)

	r := serverhttp.NewRouter(cfg, logger, pipe)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
