package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cerskine001/family-finance-tracker-sub000/internal/amqp"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/config"
	applog "github.com/cerskine001/family-finance-tracker-sub000/internal/log"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/mirror"
	gmirror "github.com/cerskine001/family-finance-tracker-sub000/internal/mirror/google"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/mirror/memory"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/storage"
	"github.com/cerskine001/family-finance-tracker-sub000/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting mirror-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var (
		appender mirror.LedgerAppender
		remover  mirror.LedgerRemover
	)
	switch cfg.MirrorBackend {
	case "sheets":
		cli, err := gmirror.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets mirror", "error", err)
			os.Exit(1)
		}
		appender, remover = cli, cli
		logger.Info("Google Sheets mirror initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		store := memory.New()
		appender, remover = store, store
		logger.Info("In-memory mirror initialized")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncWorker := worker.NewSyncWorker(repo, appender, remover)

	go func() {
		handler := func(msg *amqp.TransactionSyncMessage) error {
			return syncWorker.HandleMessage(ctx, msg)
		}
		if err := amqpClient.Consume(ctx, handler); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
			}
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()

	// Give in-flight deliveries a moment to settle
	time.Sleep(5 * time.Second)
	logger.Info("Worker shutdown complete")
}
