package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/erp-dashboard/internal/analytics"
	"github.com/odyssey-erp/erp-dashboard/internal/app"
	jobmetrics "github.com/odyssey-erp/erp-dashboard/internal/jobs"
	"github.com/odyssey-erp/erp-dashboard/internal/masterdata/products"
	"github.com/odyssey-erp/erp-dashboard/internal/platform/cache"
	"github.com/odyssey-erp/erp-dashboard/internal/platform/db"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
	"github.com/odyssey-erp/erp-dashboard/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, db.PoolConfig{DSN: cfg.PGDSN, MaxConns: cfg.PGMaxConns})
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	reportCache := cache.NewVersioned(redisClient, "erp", cfg.ReportCacheTTL)
	analyticsService := analytics.NewService(analytics.NewRepository(pool), reportCache)
	productsService := products.NewService(products.NewRepository(pool), shared.MutationHooks{Logger: logger})
	metrics := jobmetrics.NewMetrics(nil)

	scanJob := jobs.NewCriticalStockJob(productsService, analyticsService, logger, metrics)
	warmupJob := jobs.NewReportsWarmupJob(analyticsService, logger, metrics)

	scanTask, err := jobs.NewCriticalStockScanTask(true)
	if err != nil {
		logger.Error("build critical stock task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskCriticalStockScan, Handler: scanJob.Handle},
			{Type: jobs.TaskReportsWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.CriticalStockCron, Task: scanTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
