package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/chynybekuuludastan/content_gateway/internal/api"
	"github.com/chynybekuuludastan/content_gateway/internal/api/middleware"
	"github.com/chynybekuuludastan/content_gateway/internal/config"
	"github.com/chynybekuuludastan/content_gateway/internal/database"
	"github.com/chynybekuuludastan/content_gateway/internal/logger"
	"github.com/chynybekuuludastan/content_gateway/internal/notify"
	"github.com/chynybekuuludastan/content_gateway/internal/repository"
	"github.com/chynybekuuludastan/content_gateway/internal/service/generator"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/providers"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/tokens"
)

// @title Marketing Content Gateway API
// @version 1.0
// @description Generates promotional copy, HTML email templates and free-form text through an ordered chain of LLM providers, with optional email delivery.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Initialize configuration
	cfg := config.NewConfig()

	appLogger, err := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	ctx := context.Background()

	// Saved content library (optional)
	var contents repository.ContentRepository
	if cfg.PostgresURI != "" {
		db, err := database.InitPostgreSQL(cfg.PostgresURI, cfg.IsDevelopment(), appLogger)
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		contents = repository.NewRepositoryFactory(db.DB).ContentRepository
	} else {
		appLogger.Warn("POSTGRES_URI not set, content library disabled")
	}

	// Usage ledger (optional)
	var redisClient *redis.Client
	if cfg.RedisURI != "" {
		rc, err := database.InitRedis(ctx, cfg.RedisURI)
		if err != nil {
			appLogger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer rc.Close()
		redisClient = rc.Client
	} else {
		appLogger.Warn("REDIS_URI not set, usage ledger disabled")
	}
	usage := tokens.NewTracker(redisClient)

	// Provider chain
	llmService := llm.NewService(llm.ServiceOptions{
		Order:     cfg.ProviderOrder,
		RateLimit: rate.Limit(cfg.RateLimit),
		RateBurst: cfg.RateBurst,
		Usage:     usage,
		Logger:    appLogger,
	})
	for _, p := range providers.NewFromConfig(cfg, appLogger) {
		llmService.RegisterProvider(p)
	}
	appLogger.Info("Provider chain ready", "order", llmService.ProviderNames())

	gen := generator.NewService(generator.Options{
		Completer: llmService,
		Sender:    notify.NewFromConfig(cfg, appLogger),
		Logger:    appLogger,
	})

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestID} ${status} ${method} ${path} ${latency}\n",
	}))

	// Setup Swagger
	api.SetupSwagger(app)

	// Setup routes
	api.SetupRoutes(app, api.Dependencies{
		Generator: gen,
		Contents:  contents,
		Usage:     usage,
		Providers: llmService.ProviderNames,
		Logger:    appLogger,
	})

	// Start server
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLogger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown failed", "error", err)
	}
}
