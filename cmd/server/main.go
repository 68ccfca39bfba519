package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ereyga/internal/captcha"
	"ereyga/internal/config"
	"ereyga/internal/handler"
	"ereyga/internal/metrics"
	"ereyga/internal/notify"
	"ereyga/internal/ratelimit"
	"ereyga/internal/repository/postgres"
	"ereyga/internal/scheduler"
	"ereyga/internal/service"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Ereyga")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Connect to database with retries
	db, err := postgres.Connect(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	if err := postgres.RunMigrations(db.DB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Initialize repositories
	wordRepo := postgres.NewWordRepo(db)
	feedbackRepo := postgres.NewFeedbackRepo(db)

	// Initialize services
	notifier := newNotifier(cfg, logger)
	verifier := captcha.NewHCaptcha(cfg.Captcha.Secret, cfg.Captcha.VerifyURL, logger)
	services := handler.Services{
		Auth:     service.NewAuthService(cfg.AdminPassword),
		Word:     service.NewWordService(wordRepo, clockwork.NewRealClock(), m, logger),
		Admin:    service.NewAdminService(wordRepo, feedbackRepo, logger),
		Feedback: service.NewFeedbackService(feedbackRepo, verifier, notifier, m, logger),
	}

	limits, closeLimits := newRateLimitStores(cfg, logger)
	defer closeLimits()

	srv, err := handler.NewServer(cfg, services, limits, db, m, registry, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	// Feedback retention job
	retention := service.NewRetentionService(feedbackRepo, cfg.FeedbackRetentionDays, logger)
	if retention.Enabled() {
		sched := scheduler.New(retention, logger)
		if err := sched.Start(); err != nil {
			logger.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func newNotifier(cfg *config.Config, logger *zap.Logger) service.Notifier {
	if !cfg.Telegram.Enabled() {
		logger.Info("Telegram notifications disabled")
		return notify.Nop{}
	}

	tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, "")
	if err != nil {
		logger.Warn("Failed to create Telegram notifier, notifications disabled", zap.Error(err))
		return notify.Nop{}
	}
	return tg
}

// newRateLimitStores shares limits through Redis when configured, else keeps them per process
func newRateLimitStores(cfg *config.Config, logger *zap.Logger) (handler.RateLimitStores, func()) {
	global := ratelimit.PerDay("global", cfg.RateLimit.PerDay)
	globalHourly := ratelimit.PerHour("global_hourly", cfg.RateLimit.PerHour)
	feedback := ratelimit.PerHour("feedback", cfg.RateLimit.FeedbackPerHour)

	if cfg.RateLimit.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rdb, err := ratelimit.NewRedisClient(ctx, cfg.RateLimit.RedisURL)
		if err == nil {
			logger.Info("Using Redis rate limit store")
			clock := clockwork.NewRealClock()
			return handler.RateLimitStores{
				Global:       ratelimit.NewRedisStore(rdb, clock, global, logger),
				GlobalHourly: ratelimit.NewRedisStore(rdb, clock, globalHourly, logger),
				Feedback:     ratelimit.NewRedisStore(rdb, clock, feedback, logger),
			}, func() { rdb.Close() }
		}
		logger.Warn("Redis unavailable, using in-memory rate limits", zap.Error(err))
	}

	var stores handler.RateLimitStores
	stores.Global = ratelimit.NewMemoryStore(global)
	stores.GlobalHourly = ratelimit.NewMemoryStore(globalHourly)
	stores.Feedback = ratelimit.NewMemoryStore(feedback)
	return stores, func() {}
}
