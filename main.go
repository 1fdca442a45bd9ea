package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/apidoc"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/audit"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/azure"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/config"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/handler"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/middleware"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/notify"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/pdf"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/repository"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/scheduler"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/security"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/service"
	"github.com/vcscsvcscs/fitflow/apps/backend/internal/storage"
)

func main() {
	// Load configuration
	cfg, v, err := config.LoadWithViper()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger with a level that can change at runtime
	logLevel, _ := config.ParseLevel(cfg.Logging.Level)
	atomicLevel := zap.NewAtomicLevelAt(logLevel)
	zapConfig := zap.NewDevelopmentConfig()
	if cfg.Server.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.Level = atomicLevel
	zapConfig.Encoding = cfg.Logging.Format
	logger, err := zapConfig.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.String("config_file", cfg.ConfigFile),
	)
	config.WatchLogLevel(v, atomicLevel, logger)

	ctx := context.Background()

	// Initialize the key-value store
	var (
		store  storage.Store
		pool   *pgxpool.Pool
		sink   audit.Sink
		pinger handler.Pinger
	)
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err = pgxpool.New(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("Failed to ping database", zap.Error(err))
		}
		logger.Info("Successfully connected to database")

		pgStore := storage.NewPostgresStore(pool, logger)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			logger.Fatal("Failed to create key-value schema", zap.Error(err))
		}
		pgSink := audit.NewPostgresSink(pool, logger)
		if err := pgSink.EnsureSchema(ctx); err != nil {
			logger.Fatal("Failed to create audit schema", zap.Error(err))
		}
		store, sink, pinger = pgStore, pgSink, pool
	default:
		store = storage.NewMemoryStore()
		logger.Warn("Using in-memory storage, data will not survive a restart")
	}

	if cfg.Storage.EncryptionKey != "" {
		key, err := security.ParseKey(cfg.Storage.EncryptionKey)
		if err != nil {
			logger.Fatal("Invalid encryption key", zap.Error(err))
		}
		encryptor, err := security.NewEncryptor(key)
		if err != nil {
			logger.Fatal("Failed to initialize encryptor", zap.Error(err))
		}
		store = storage.NewEncryptedStore(store, encryptor)
		logger.Info("Stored values are encrypted at rest")
	}
	if sink == nil {
		sink = audit.NewStoreSink(store)
	}

	// Initialize blob storage for reports and backups
	var reportBlobs, backupBlobs azure.BlobStorage
	if cfg.Azure.Storage.Enabled() {
		reportBlobs, err = azure.NewBlobStorageClient(
			cfg.Azure.Storage.AccountName,
			cfg.Azure.Storage.AccountKey,
			cfg.Azure.Storage.ReportContainer,
			logger,
		)
		if err != nil {
			logger.Fatal("Failed to initialize report blob storage client", zap.Error(err))
		}
		backupBlobs, err = azure.NewBlobStorageClient(
			cfg.Azure.Storage.AccountName,
			cfg.Azure.Storage.AccountKey,
			cfg.Azure.Storage.BackupContainer,
			logger,
		)
		if err != nil {
			logger.Fatal("Failed to initialize backup blob storage client", zap.Error(err))
		}
	} else {
		memBlobs := azure.NewMemoryBlobStorage(logger)
		reportBlobs, backupBlobs = memBlobs, memBlobs
		logger.Warn("Azure storage is not configured, reports and backups are kept in memory")
	}

	// Initialize the notification channel
	var notifier notify.Notifier = notify.NewLogNotifier(logger)
	if cfg.Notifier.Telegram.Enabled() {
		telegram, err := notify.NewTelegramNotifier(cfg.Notifier.Telegram.Token, cfg.Notifier.Telegram.ChatID, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
		}
		notifier = telegram
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(store, logger)
	reminderRepo := repository.NewReminderRepository(store, logger)

	// Initialize services
	auditLogger := audit.NewLogger(sink, logger)

	profileService := service.NewProfileService(profileRepo, auditLogger, logger)
	profileService.SetActivitySnapshots(cfg.Profile.ActivitySnapshots)
	profileService.Load(ctx)

	reminderService := service.NewReminderService(reminderRepo, logger)
	reminderService.Load(ctx)

	reminderScheduler := scheduler.New(reminderService, notifier, scheduler.Config{
		Enabled:    cfg.Scheduler.Enabled,
		ResyncSpec: cfg.Scheduler.ResyncSpec,
	}, logger)
	reminderService.AttachScheduler(reminderScheduler)
	if err := reminderScheduler.Start(ctx); err != nil {
		logger.Fatal("Failed to start reminder scheduler", zap.Error(err))
	}

	dashboardService := service.NewDashboardService(profileService, logger)
	reportService := service.NewReportService(profileService, reportBlobs, pdf.NewPDFGenerator(logger), auditLogger, logger)
	exportService := service.NewExportService(profileService, reminderService, backupBlobs, auditLogger, logger)

	// Load the API document
	doc, err := apidoc.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load OpenAPI document", zap.Error(err))
	}
	docHandler, err := apidoc.NewHandler(doc)
	if err != nil {
		logger.Fatal("Failed to render OpenAPI document", zap.Error(err))
	}

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLoggingMiddleware(logger))
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	handler.RegisterRoutes(r, handler.Handlers{
		Health:      handler.NewHealthHandler(pinger, cfg.Storage.Backend, logger),
		Profile:     handler.NewProfileHandler(profileService, logger),
		Dashboard:   handler.NewDashboardHandler(dashboardService, logger),
		Suggestions: handler.NewSuggestionHandler(profileService, reminderService, logger),
		Reminders:   handler.NewReminderHandler(reminderService, notifier, logger),
		Reports:     handler.NewReportHandler(reportService, exportService, logger),
		OpenAPI:     docHandler.GetOpenAPI,
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	reminderScheduler.Stop()

	logger.Info("Server exited")
}
