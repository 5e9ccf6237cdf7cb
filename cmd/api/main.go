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

	"buildcare_site/internal/adapters/storage"
	"buildcare_site/internal/catalog"
	catalogdomain "buildcare_site/internal/catalog/domain"
	"buildcare_site/internal/content"
	"buildcare_site/internal/email"
	"buildcare_site/internal/events"
	apphttp "buildcare_site/internal/http"
	"buildcare_site/internal/http/router"
	"buildcare_site/internal/inquiry"
	"buildcare_site/internal/notification"
	"buildcare_site/internal/scheduler"
	"buildcare_site/internal/sitemap"
	"buildcare_site/platform/config"
	"buildcare_site/platform/db"
	"buildcare_site/platform/logger"
	"buildcare_site/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

const storageBucketEnsureErrPrefix = "failed to ensure storage bucket exists: "
const storageBucketEnsureErrMsg = "failed to ensure storage bucket exists"

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error(storageBucketEnsureErrMsg, "error", err, "bucket", bucket)
		panic(storageBucketEnsureErrPrefix + err.Error())
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	deps := inquiry.Deps{}
	var health apphttp.HealthChecker

	// The Postgres index is optional; without it the admin listing is off.
	if cfg.IsDatabaseEnabled() {
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg)
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

		var pool *pgxpool.Pool
		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		defer pool.Close()
		log.Info("database connection established")

		deps.Pool = pool
		health = db.NewPoolAdapter(pool)
	} else {
		log.Warn("DATABASE_URL not configured; inquiry index and admin listing disabled")
	}

	// Object storage is optional; the filesystem sink always runs.
	if cfg.IsMinIOEnabled() {
		storageSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		ensureBucket(ctx, log, storageSvc, "inquiries", cfg.GetMinioBucketInquiries())
		log.Info("storage service initialized", "inquiriesBucket", cfg.GetMinioBucketInquiries())
		deps.Objects = storageSvc
	} else {
		log.Warn("MINIO_ENDPOINT not configured; object storage sink disabled")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	deps.Bus = eventBus

	inquiryNotifier, closeScheduler := initInquiryNotifier(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(email.NewSender(cfg), cfg, log)
	if inquiryNotifier != nil {
		notificationModule.SetInquiryNotifier(inquiryNotifier)
	}
	notificationModule.RegisterHandlers(eventBus)

	services, err := catalogdomain.LoadEmbedded()
	if err != nil {
		log.Error("failed to load service catalog", "error", err)
		panic("failed to load service catalog: " + err.Error())
	}

	contentModule, err := content.NewModule(services, val, cfg)
	if err != nil {
		log.Error("failed to initialize content module", "error", err)
		panic("failed to initialize content module: " + err.Error())
	}

	catalogModule := catalog.NewModule(services, contentModule.Resolver(), log)
	sitemapModule := sitemap.NewModule(catalogModule.Service(), contentModule.Resolver(), cfg)

	inquiryModule, err := inquiry.NewModule(services, cfg, deps, val, log)
	if err != nil {
		log.Error("failed to initialize inquiry module", "error", err)
		panic("failed to initialize inquiry module: " + err.Error())
	}
	log.Info("inquiry sinks configured", "sinks", inquiryModule.Sinks())

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:     cfg,
		Logger:     log,
		Health:     health,
		EventBus:   eventBus,
		Middleware: []gin.HandlerFunc{contentModule.Middleware()},
		Modules: []apphttp.Module{
			contentModule,
			catalogModule,
			inquiryModule,
			sitemapModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		// Let queued notifications finish before the process exits.
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initInquiryNotifier(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.InquiryNotifier, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; staff notifications are sent inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
