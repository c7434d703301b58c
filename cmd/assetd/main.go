package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/cli"
	apphttp "github.com/tibame201020/asset-frontend-app-sub000/internal/http"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting assetd")

	cfg := cli.LoadAndValidateConfig(logger)
	loc := cfg.Location()

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// The broker is optional for the API: without it, records are still
	// durable and summaries fall back to the worker's periodic backfill.
	var publisher services.ChangePublisher
	if amqpClient := cli.InitAMQP(logger, cfg); amqpClient != nil {
		publisher = amqpClient
		defer amqpClient.Close()
		logger.Info("Change notifications enabled", "exchange", cfg.AMQPExchange)
	} else {
		logger.Warn("Running without change notifications")
	}

	srv := apphttp.NewServer(apphttp.Config{
		Addr:              ":" + cfg.Port,
		RequestsPerMinute: cfg.RequestsPerMinute,
		CacheTTL:          cfg.CacheTTL,
		CacheSize:         cfg.CacheSize,
		Location:          loc,
		ReadyCheck:        repo.Ping,
	},
		services.NewLedgerService(repo, publisher, loc),
		services.NewCalendarService(repo, publisher, loc),
		services.NewHealthService(repo, publisher, loc),
		services.NewDashboardService(repo, loc),
		services.NewSummaryRebuilder(repo, loc),
	)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting API server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	slog.Info("assetd stopped")
}
