package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DukeRupert/fireaudit/internal"
	"github.com/DukeRupert/fireaudit/internal/cache"
	"github.com/DukeRupert/fireaudit/internal/email"
	"github.com/DukeRupert/fireaudit/internal/handler"
	"github.com/DukeRupert/fireaudit/internal/jobs"
	"github.com/DukeRupert/fireaudit/internal/metrics"
	"github.com/DukeRupert/fireaudit/internal/middleware"
	"github.com/DukeRupert/fireaudit/internal/report"
	"github.com/DukeRupert/fireaudit/internal/repository"
	"github.com/DukeRupert/fireaudit/internal/schedule"
	"github.com/DukeRupert/fireaudit/internal/service"
	"github.com/DukeRupert/fireaudit/internal/storage"
	"github.com/DukeRupert/fireaudit/internal/worker"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manual reminders per client per hour.
const (
	reminderLimit       = 3
	reminderLimitWindow = time.Hour
)

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database connection
	db, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	if err := internal.RunMigrations(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database ready")

	store := repository.NewStore(db)

	// Dashboard cache: Redis when configured, otherwise every read hits the database.
	var dashboardCache cache.Cache = cache.Nop{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.Connect(ctx, cfg.RedisURL, logger)
		if err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		defer redisCache.Close()
		dashboardCache = redisCache
		logger.Info("Dashboard cache enabled", "ttl", cfg.DashboardCacheTTL)
	}

	fileStorage, err := storage.New(cfg.StorageProvider,
		storage.LocalConfig{
			BasePath: cfg.LocalStoragePath,
			BaseURL:  cfg.LocalStorageURL,
		},
		storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		},
		logger,
	)
	if err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}

	emailService, err := email.NewSMTPEmailService(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
	}, logger)
	if err != nil {
		return fmt.Errorf("email service initialization failed: %w", err)
	}

	// Initialize services
	clock := schedule.SystemClock
	clientService := service.NewClientService(store, dashboardCache, clock, cfg.Timezone, logger)
	inspectionService := service.NewInspectionService(store, dashboardCache, clock, cfg.Timezone, logger)
	dashboardService := service.NewDashboardService(store, dashboardCache, cfg.DashboardCacheTTL, clock, cfg.Timezone, logger)
	notificationService := service.NewNotificationService(store, emailService, clock, cfg.Timezone, logger)
	reportService := service.NewReportService(store, fileStorage, report.Generators(), clock, cfg.Timezone, logger)

	// Background worker
	var w *worker.Worker
	if cfg.WorkerEnabled {
		w, err = startWorker(ctx, cfg, db, store, reportService, notificationService, logger)
		if err != nil {
			return err
		}
	} else {
		logger.Info("Background worker disabled")
	}

	// Create router
	mux := http.NewServeMux()

	reminderLimiter := middleware.NewRateLimitMiddleware(
		middleware.NewRateLimiter(reminderLimit, reminderLimitWindow),
		middleware.ByPathValue("id"),
		logger,
	)

	handler.NewClientHandler(clientService, notificationService, logger).RegisterRoutes(mux, reminderLimiter.Limit)
	handler.NewInspectionHandler(inspectionService, logger).RegisterRoutes(mux)
	handler.NewReportHandler(reportService, logger).RegisterRoutes(mux)
	handler.NewDashboardHandler(dashboardService, logger).RegisterRoutes(mux)

	// JSON 404 for unknown API paths instead of the plain-text default.
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		handler.NotFoundResponse(w, r, logger)
	})

	if cfg.StorageProvider == storage.ProviderLocal {
		mux.Handle("GET /files/", http.StripPrefix("/files/", http.FileServer(http.Dir(cfg.LocalStoragePath))))
	}

	metricsAuth := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword)
	mux.Handle("GET /metrics", metricsAuth.Handler(promhttp.Handler()))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	stack := middleware.Stack(
		metrics.Middleware,
		middleware.NewRequestLoggingMiddleware(logger).Handler,
		middleware.NewSecurityHeadersMiddleware(cfg.Env == "production").Handler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           stack(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "env", cfg.Env, "timezone", cfg.Timezone.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("Shutting down server", "signal", sig.String())
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Stop scheduling new work before draining
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if w != nil {
		w.Stop()
	}

	logger.Info("Server stopped")
	return nil
}

// startWorker registers the job handlers, starts polling and, when a
// reminder interval is configured, queues a reminder sweep on that interval.
func startWorker(
	ctx context.Context,
	cfg *internal.Config,
	db *sql.DB,
	store *repository.SQLStore,
	reports service.ReportService,
	notifications service.NotificationService,
	logger *slog.Logger,
) (*worker.Worker, error) {
	workerCfg := worker.DefaultConfig()
	workerCfg.Concurrency = cfg.WorkerConcurrency
	workerCfg.PollInterval = cfg.WorkerPollInterval
	workerCfg.JobTimeout = cfg.WorkerJobTimeout

	w, err := worker.New(db, repository.New(db), workerCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("worker initialization failed: %w", err)
	}

	w.Register(jobs.NewGenerateReportHandler(reports, notifications, cfg.ReportEmails, logger))
	w.Register(jobs.NewSendRemindersHandler(notifications, logger))
	w.Start(ctx)

	if cfg.ReminderInterval > 0 {
		go worker.RunPeriodic(ctx, store, worker.JobTypeSendReminders, cfg.ReminderInterval,
			func(ctx context.Context, q worker.Enqueuer) error {
				_, err := worker.EnqueueSendReminders(ctx, q)
				return err
			}, logger)
	}

	return w, nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
