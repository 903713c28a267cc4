package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/scintilla-cusat/recruit-api/internal/handler"
	"github.com/scintilla-cusat/recruit-api/internal/notifier"
	"github.com/scintilla-cusat/recruit-api/internal/repository"
	"github.com/scintilla-cusat/recruit-api/internal/service"
	"github.com/scintilla-cusat/recruit-api/pkg/cache"
	"github.com/scintilla-cusat/recruit-api/pkg/config"
	"github.com/scintilla-cusat/recruit-api/pkg/database"
	"github.com/scintilla-cusat/recruit-api/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Redis is optional; the service degrades to uncached operation.
	var redisClient *goredis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, caching disabled", zap.Error(err))
			redisClient = nil
		}
	}

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, log)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, log, redisClient != nil)

	webhookClient := notifier.NewClient(cfg.Webhook.URL, cfg.Webhook.Timeout)
	events := notifier.New(webhookClient, log, notifier.Config{
		Workers:    cfg.Webhook.Workers,
		BufferSize: cfg.Webhook.BufferSize,
		MaxRetries: cfg.Webhook.MaxRetries,
		RetryDelay: cfg.Webhook.RetryDelay,
	})
	events.Start(context.Background())
	defer events.Stop()

	validate := validator.New()

	applicantRepo := repository.NewApplicantRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	applicantSvc := service.NewApplicantService(applicantRepo, validate, log, events, cacheSvc, metrics, service.ApplicantServiceConfig{
		MaxScreenshotBytes: cfg.Intake.MaxScreenshotBytes,
	})
	authSvc := service.NewAuthService(adminRepo, validate, log, events, service.AuthServiceConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
	})
	reviewSvc := service.NewReviewService(applicantRepo, cacheSvc, log, cfg.Cache.TTL)
	paymentSvc := service.NewPaymentService(adminRepo, cacheSvc, log, events, cfg.Cache.TTL)
	exportSvc := service.NewExportService(applicantRepo, log)

	router := handler.NewRouter(handler.RouterDeps{
		Config:    cfg,
		Logger:    log,
		Metrics:   metrics,
		Auth:      authSvc,
		Submit:    handler.NewSubmitHandler(applicantSvc, log),
		AuthH:     handler.NewAuthHandler(authSvc, cfg.Session, log),
		Applicant: handler.NewApplicantHandler(reviewSvc, applicantSvc, exportSvc, log),
		Payment:   handler.NewPaymentHandler(paymentSvc, log),
		Health:    handler.NewHealthHandler(db, redisClient),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
