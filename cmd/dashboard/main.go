package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/palegrove/skyline-explorer/internal/adapter/csvfile"
	httpadapter "github.com/palegrove/skyline-explorer/internal/adapter/http"
	"github.com/palegrove/skyline-explorer/internal/config"
	"github.com/palegrove/skyline-explorer/internal/observability"
	"github.com/palegrove/skyline-explorer/internal/views"
)

func main() {
	// Optional .env for local runs; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	dataset, err := csvfile.Load(cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to load dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}
	metrics.DatasetRecords.Set(float64(dataset.Len()))
	metrics.DatasetUnknownYear.Set(float64(dataset.UnknownYearCount()))
	logger.Info("dataset loaded",
		"source", dataset.Source,
		"records", dataset.Len(),
		"unknown_years", dataset.UnknownYearCount(),
		"coordinates", dataset.HasCoordinateColumns,
	)

	renderer := views.New(dataset, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, renderer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
