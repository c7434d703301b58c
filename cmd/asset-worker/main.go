package main

import (
	"context"
	"os"
	"time"

	"github.com/tibame201020/asset-frontend-app-sub000/internal/cli"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/services"
	"github.com/tibame201020/asset-frontend-app-sub000/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting asset-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	loc := cfg.Location()

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	amqpClient := cli.InitAMQP(logger, cfg)
	if amqpClient == nil {
		logger.Error("Worker requires an AMQP broker", "url", cfg.AMQPURL)
		os.Exit(1)
	}
	defer amqpClient.Close()

	rebuilder := services.NewSummaryRebuilder(repo, loc)
	summaryWorker := worker.NewSummaryWorker(amqpClient, rebuilder, loc)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	// Catch up on days changed while the worker was down before tailing
	// the change stream.
	if err := summaryWorker.Backfill(ctx, cfg.RebuildWindowDays); err != nil {
		logger.Error("Summary backfill failed", "error", err)
		// Keep going: the consumer still repairs days as changes arrive.
	}

	logger.Info("Consuming record changes", "queue", cfg.AMQPQueue)
	if err := summaryWorker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("asset-worker stopped")
}
