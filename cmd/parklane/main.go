package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/parklane-pm/parklane/internal/app"
	"github.com/parklane-pm/parklane/internal/landlords"
	"github.com/parklane-pm/parklane/internal/leases"
	"github.com/parklane-pm/parklane/internal/observability"
	"github.com/parklane-pm/parklane/internal/platform/cache"
	"github.com/parklane-pm/parklane/internal/platform/db"
	"github.com/parklane-pm/parklane/internal/reports"
	reporthttp "github.com/parklane-pm/parklane/internal/reports/http"
	"github.com/parklane-pm/parklane/jobs"
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, report cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	if err := reportCache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("subscribe cache invalidation", slog.Any("error", err))
	}
	reportRepo := reports.NewRepository(pool)
	reportService := reports.NewService(reportRepo, reportCache)
	reportHandler := reporthttp.NewHandler(logger, reportService)

	leaseRepo := leases.NewRepository(pool)
	leaseService := leases.NewService(leaseRepo)
	leaseHandler := leases.NewHandler(logger, leaseService)

	landlordRepo := landlords.NewRepository(pool)
	landlordService := landlords.NewService(landlordRepo)
	landlordHandler := landlords.NewHandler(logger, landlordService)

	metrics := observability.NewMetrics()
	if err := reporthttp.SetupCacheMetrics(metrics.Registerer()); err != nil {
		logger.Warn("register cache metrics", slog.Any("error", err))
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		ReportHandler:   reportHandler,
		LeaseHandler:    leaseHandler,
		LandlordHandler: landlordHandler,
		JobHandler:      jobHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
