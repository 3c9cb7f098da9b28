package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geotracker/backend/internal/audit"
	"github.com/geotracker/backend/internal/config"
	"github.com/geotracker/backend/internal/database"
	"github.com/geotracker/backend/internal/handlers"
	"github.com/geotracker/backend/internal/logging"
	"github.com/geotracker/backend/internal/routes"
	"github.com/geotracker/backend/internal/services"
	"github.com/geotracker/backend/internal/storage"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			TracesSampleRate: 0.2,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}
	db := database.DB

	// ERROR records additionally land in the system_logs table.
	dbHandler := logging.NewDBHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, nil),
		dbHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cleanupDone)

	recorder := audit.NewRecorder(db)

	var store storage.Storage
	var err error
	if cfg.MinIOEndpoint != "" {
		store, err = storage.NewMinIO(cfg)
	} else {
		store, err = storage.NewLocal(cfg.UploadPath)
	}
	if err != nil {
		slog.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	authService := services.NewAuthService(db, cfg, recorder)
	reportService := services.NewReportService(db, cfg, store, recorder)
	voteService := services.NewVoteService(db, recorder)
	commentService := services.NewCommentService(db, recorder)
	userService := services.NewUserService(db, recorder)
	statsService := services.NewStatsService(db)
	metadataService := services.NewMetadataService(db)

	app := fiber.New(fiber.Config{
		AppName:      "geotracker",
		BodyLimit:    int(cfg.MaxUploadSizeMB) * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	if os.Getenv("SENTRY_DSN") != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	}

	routes.Setup(app, db, cfg, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService),
		Reports:  handlers.NewReportHandler(reportService),
		Votes:    handlers.NewVoteHandler(voteService),
		Comments: handlers.NewCommentHandler(commentService),
		Users:    handlers.NewUserHandler(userService),
		Stats:    handlers.NewStatsHandler(statsService),
		Metadata: handlers.NewMetadataHandler(metadataService),
		Health:   handlers.NewHealthHandler(),
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()
	slog.Info("server started", "port", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	recorder.Stop()
	close(cleanupDone)
	dbHandler.Stop()
	sentry.Flush(2 * time.Second)

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	slog.Info("server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		msg = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled request error", "error", err, "path", c.Path())
		sentry.CaptureException(err)
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}
