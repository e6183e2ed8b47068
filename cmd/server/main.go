package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fluswork/flus-backend/internal/catalog"
	"github.com/fluswork/flus-backend/internal/clients"
	"github.com/fluswork/flus-backend/internal/config"
	"github.com/fluswork/flus-backend/internal/database"
	"github.com/fluswork/flus-backend/internal/features"
	"github.com/fluswork/flus-backend/internal/features/achievements"
	"github.com/fluswork/flus-backend/internal/features/applications"
	"github.com/fluswork/flus-backend/internal/features/conversations"
	"github.com/fluswork/flus-backend/internal/features/cv"
	"github.com/fluswork/flus-backend/internal/features/jobs"
	"github.com/fluswork/flus-backend/internal/features/profiles"
	"github.com/fluswork/flus-backend/internal/features/reviews"
	"github.com/fluswork/flus-backend/internal/features/support"
	"github.com/fluswork/flus-backend/internal/features/uploads"
	"github.com/fluswork/flus-backend/internal/handlers"
	"github.com/fluswork/flus-backend/internal/logging"
	"github.com/fluswork/flus-backend/internal/mail"
	"github.com/fluswork/flus-backend/internal/metrics"
	"github.com/fluswork/flus-backend/internal/middleware"
	"github.com/fluswork/flus-backend/internal/realtime"
	"github.com/fluswork/flus-backend/internal/routes"
	"github.com/fluswork/flus-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Category registry
	registry, err := catalog.LoadFromFile(cfg.CategoriesPath)
	if err != nil {
		slog.Error("failed to load category registry", "path", cfg.CategoriesPath, "error", err)
		os.Exit(1)
	}
	slog.Info("category registry loaded", "categories", len(registry.All()))

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Auth with DB-backed sessions and hourly expiry sweep
	authService := services.NewAuthService(database.DB, cfg)
	sweepDone := make(chan struct{})
	authService.StartSessionSweep(sweepDone)

	// Realtime hub, mail and metrics
	hub := realtime.NewHub()
	mailer := mail.FromConfig(cfg)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector())
	promRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(promRegistry)

	// Domain services. Conversations come first: jobs and applications
	// write workflow events into them.
	conversationService := conversations.NewConversationService(database.DB, hub, collector, cfg.DegradeReads)
	applicationService := applications.NewApplicationService(database.DB, conversationService, hub, mailer, collector, cfg.DegradeReads)
	jobService := jobs.NewJobService(database.DB, registry, conversationService, hub, mailer, collector, cfg.DegradeReads)
	achievementService := achievements.NewAchievementService(database.DB)
	profileService := profiles.NewProfileService(database.DB)
	reviewService := reviews.NewReviewService(database.DB)
	cvService := cv.NewCVService(database.DB, nil)
	supportService := support.NewSupportService(database.DB, achievementService)

	featureList := []features.Feature{
		jobs.New(jobService),
		applications.New(applicationService),
		conversations.New(conversationService),
		achievements.New(achievementService),
		profiles.New(profileService),
		reviews.New(reviewService),
		cv.New(cvService),
		support.New(supportService),
		uploads.New(cfg.UploadDir),
	}

	// Migrate feature models
	for _, f := range featureList {
		if modelList := f.Models(); len(modelList) > 0 {
			if err := database.MigrateModels(modelList); err != nil {
				slog.Error("feature migration failed", "feature", f.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("feature migrated", "feature", f.ID(), "models", len(modelList))
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	healthHandler := handlers.NewHealthHandler(registry)
	legalHandler := handlers.NewLegalHandler()
	metaHandler := handlers.NewMetaHandler(registry)
	addressHandler := handlers.NewAddressHandler(clients.NewAddressClient(cfg.AddressAPIURL))

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    12 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, routes.Deps{
		Auth:      authHandler,
		Health:    healthHandler,
		Legal:     legalHandler,
		Meta:      metaHandler,
		Address:   addressHandler,
		Sessions:  authService,
		Hub:       hub,
		Collector: collector,
		Registry:  promRegistry,
		Features:  featureList,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	close(sweepDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
