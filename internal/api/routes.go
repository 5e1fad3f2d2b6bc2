package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/chynybekuuludastan/content_gateway/internal/api/handlers"
	"github.com/chynybekuuludastan/content_gateway/internal/api/middleware"
	"github.com/chynybekuuludastan/content_gateway/internal/repository"
)

// Dependencies are the services the routes are wired to
type Dependencies struct {
	Generator handlers.ContentGenerator
	Contents  repository.ContentRepository // nil when no database is configured
	Usage     handlers.UsageReader
	Providers func() []string
	Logger    handlers.Logger
}

// SetupRoutes configures all routes
func SetupRoutes(app *fiber.App, deps Dependencies) {
	gatewayHandler := handlers.NewGatewayHandler(deps.Generator, deps.Logger)
	usageHandler := handlers.NewUsageHandler(deps.Usage, deps.Logger)

	// Gateway functions called by the browser forms
	functions := app.Group("/functions/v1", middleware.EdgeCORS())
	functions.Post("/generate-promo", gatewayHandler.GeneratePromo)
	functions.Post("/generate-email-template", gatewayHandler.GenerateEmailTemplate)
	functions.Post("/generate-text", gatewayHandler.GenerateText)
	functions.Post("/multi-agent-generate", gatewayHandler.MultiAgentGenerate)
	functions.Post("/send-email", gatewayHandler.SendEmail)

	// Admin API
	api := app.Group("/api", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE",
	}))

	api.Get("/health", func(c *fiber.Ctx) error {
		var providers []string
		if deps.Providers != nil {
			providers = deps.Providers()
		}
		return c.JSON(handlers.HealthResponse{
			Status:    "ok",
			Providers: providers,
		})
	})

	api.Get("/usage", usageHandler.GetUsage)

	content := api.Group("/content")
	if deps.Contents == nil {
		content.Use(handlers.ContentDisabled)
		return
	}

	contentHandler := handlers.NewContentHandler(deps.Contents, deps.Logger)
	content.Post("/", contentHandler.CreateContent)
	content.Get("/", contentHandler.ListContent)
	content.Get("/:id", contentHandler.GetContent)
	content.Delete("/:id", contentHandler.DeleteContent)
}
