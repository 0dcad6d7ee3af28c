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

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/wardiya/storefront/internal/config"
	"github.com/wardiya/storefront/internal/debuglog"
	"github.com/wardiya/storefront/internal/handlers"
	"github.com/wardiya/storefront/internal/logging"
	"github.com/wardiya/storefront/internal/middleware"
	"github.com/wardiya/storefront/internal/routes"
	"github.com/wardiya/storefront/internal/session"
	"github.com/wardiya/storefront/internal/upstream"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	// Optional .env for local development
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	// Development log sink; inert everywhere else
	sink := debuglog.New(cfg.Development())
	if cfg.Development() {
		logging.SetupWithSink(sink)
	}

	// Upstream commerce API client
	client, err := upstream.New(cfg, sink)
	if err != nil {
		slog.Error("upstream client setup failed", "error", err)
		os.Exit(1)
	}

	// Per-visitor store registry
	manager := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, func(id string) *session.Visitor {
		return session.NewVisitor(id, client)
	})

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg)
	commerceHandler := handlers.NewCommerceHandler()
	catalogHandler := handlers.NewCatalogHandler(client)
	healthHandler := handlers.NewHealthHandler(client)
	revalidateHandler := handlers.NewRevalidateHandler(client, cfg)
	debugHandler := handlers.NewDebugHandler(sink)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
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
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, manager, authHandler, commerceHandler, catalogHandler, healthHandler, revalidateHandler, debugHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("storefront gateway starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
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
