package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ironloft/gymboard/internal/board"
	"github.com/ironloft/gymboard/internal/bootstrap"
	"github.com/ironloft/gymboard/internal/cache"
	"github.com/ironloft/gymboard/internal/config"
	"github.com/ironloft/gymboard/internal/database"
	"github.com/ironloft/gymboard/internal/event"
	"github.com/ironloft/gymboard/internal/handler"
	"github.com/ironloft/gymboard/internal/record"
	"github.com/ironloft/gymboard/internal/scheduler"
	"github.com/ironloft/gymboard/internal/server"
	"github.com/ironloft/gymboard/internal/sse"
	"github.com/ironloft/gymboard/internal/webhook"
	"github.com/ironloft/gymboard/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// @title Gymboard Sync API
// @version 1.0
// @description Gym operations service that mirrors local records onto work-management boards and ingests board webhooks.
// @BasePath /
func main() {
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	bootstrap.SetupLogger(cfg)
	for _, warning := range warnings {
		slog.Warn(warning)
	}

	if err := database.Migrate(cfg.GetDBConnString()); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(), database.DefaultMaxConnections, 30*time.Minute, time.Hour)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := bootstrap.InitializeRepositories(dbPool)

	boardClient, err := board.NewClient(board.Config{
		Endpoint:        cfg.BoardAPIEndpoint,
		Token:           cfg.BoardAPIToken,
		APIVersion:      cfg.BoardAPIVersion,
		MinCallInterval: cfg.SyncMinCallInterval,
		RatePerMinute:   cfg.SyncRatePerMinute,
		RetryAttempts:   cfg.SyncRetryAttempts,
		RetryBackoff:    cfg.SyncRetryBackoff,
	})
	if err != nil {
		slog.Error("Failed to create board client", "error", err)
		os.Exit(1)
	}

	bus := event.NewMemoryBus()
	cacheSignal := cache.NewSignal()

	readCache, err := cache.NewRecordCache(cfg.RecordCacheSize, cacheSignal)
	if err != nil {
		slog.Error("Failed to create record cache", "error", err)
		os.Exit(1)
	}

	registry, err := bootstrap.InitializeSyncManagers(cfg, repos, boardClient, bus, cacheSignal)
	if err != nil {
		slog.Error("Failed to initialize sync managers", "error", err)
		os.Exit(1)
	}

	recordService := record.NewService(repos.Record, readCache)
	verifier := webhook.NewVerifier(cfg.WebhookSecret)
	webhookService := webhook.NewService(registry, repos.WebhookLog, bus)

	sseHub := sse.NewHub()
	sseHub.Start()
	sse.NewSubscriber(sseHub, bus).Subscribe()

	workerPool := worker.NewPool(cfg.WorkerCount, cfg.WorkerCount*4)
	workerPool.Start()

	sched := scheduler.New(workerPool)
	bootstrap.ScheduleSweeps(cfg, sched, registry)

	handler.InitValidator()

	srv := server.NewServer(
		cfg.Port,
		cfg.APIKey,
		cfg.TrustedProxies,
		dbPool,
		recordService,
		registry,
		verifier,
		webhookService,
		cacheSignal,
		sseHub,
	)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:     srv,
		Scheduler:  sched,
		WorkerPool: workerPool,
		SSEHub:     sseHub,
	})
}
