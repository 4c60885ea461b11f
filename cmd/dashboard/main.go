package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/erp-dashboard/internal/analytics"
	analytichttp "github.com/odyssey-erp/erp-dashboard/internal/analytics/http"
	"github.com/odyssey-erp/erp-dashboard/internal/app"
	"github.com/odyssey-erp/erp-dashboard/internal/auth"
	"github.com/odyssey-erp/erp-dashboard/internal/masterdata/costs"
	"github.com/odyssey-erp/erp-dashboard/internal/masterdata/products"
	"github.com/odyssey-erp/erp-dashboard/internal/observability"
	"github.com/odyssey-erp/erp-dashboard/internal/platform/cache"
	"github.com/odyssey-erp/erp-dashboard/internal/platform/db"
	"github.com/odyssey-erp/erp-dashboard/internal/rbac"
	"github.com/odyssey-erp/erp-dashboard/internal/sales/customers"
	"github.com/odyssey-erp/erp-dashboard/internal/shared"
	"github.com/odyssey-erp/erp-dashboard/internal/users"
	"github.com/odyssey-erp/erp-dashboard/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
	slog.SetDefault(logger)

	dbpool, err := db.New(ctx, db.PoolConfig{DSN: cfg.PGDSN, MaxConns: cfg.PGMaxConns})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Reports fall back to PostgreSQL while Redis is down.
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	reportCache := cache.NewVersioned(redisClient, "erp", cfg.ReportCacheTTL)
	hooks := shared.MutationHooks{
		Audit:  shared.NewAuditLogger(dbpool),
		Cache:  reportCache,
		Logger: logger,
	}

	tokens, err := auth.NewTokenManager(auth.TokenConfig{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer, TTL: cfg.TokenTTL})
	if err != nil {
		logger.Error("init token manager", slog.Any("error", err))
		os.Exit(1)
	}
	authMiddleware := auth.Middleware{Gate: auth.NewGate(tokens), Logger: logger, Metrics: metrics}
	rbacMiddleware := rbac.Middleware{Logger: logger, Metrics: metrics}

	usersRepo := users.NewRepository(dbpool)
	authService := auth.NewService(usersRepo, tokens, hooks).WithAuthorizer(rbacMiddleware)
	usersService := users.NewService(usersRepo, shared.MutationHooks{Audit: hooks.Audit, Logger: logger})

	productsService := products.NewService(products.NewRepository(dbpool), hooks)
	costsService := costs.NewService(costs.NewRepository(dbpool), hooks)
	customersService := customers.NewService(customers.NewRepository(dbpool), hooks)
	analyticsService := analytics.NewService(analytics.NewRepository(dbpool), reportCache)

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobClient := jobs.NewClient(redisOpts)
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	if _, err := jobClient.EnqueueReportsWarmup(ctx); err != nil {
		logger.Warn("enqueue reports warmup", slog.Any("error", err))
	}

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Metrics:            metrics,
		AuthMiddleware:     authMiddleware,
		AuthHandler:        auth.NewHandler(logger, authService, authMiddleware),
		ProductsHandler:    products.NewHandler(logger, productsService, rbacMiddleware),
		CostsHandler:       costs.NewHandler(logger, costsService, rbacMiddleware),
		CustomersHandler:   customers.NewHandler(logger, customersService, rbacMiddleware),
		UsersHandler:       users.NewHandler(logger, usersService, rbacMiddleware),
		PermissionsHandler: rbac.NewPermissionsHandler(rbacMiddleware),
		ReportsHandler:     analytichttp.NewHandler(logger, analyticsService, rbacMiddleware, cfg.ExportLimitPerMin),
		JobHandler:         jobs.NewHandler(inspector, logger),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
