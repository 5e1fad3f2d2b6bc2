package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chynybekuuludastan/content_gateway/internal/notify"
	"github.com/chynybekuuludastan/content_gateway/internal/service/generator"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm"
)

// Logger is the logging surface handlers need
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// parseJSON decodes the request body into dst; an empty body leaves dst untouched
func parseJSON(c *fiber.Ctx, dst interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}

// gatewayError writes the {error} body used by the gateway functions
func gatewayError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	var inputErr *generator.InputError
	switch {
	case errors.As(err, &inputErr):
		return fiber.StatusBadRequest
	case errors.Is(err, llm.ErrRateLimitExceeded):
		return fiber.StatusTooManyRequests
	case errors.Is(err, notify.ErrNotConfigured):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, llm.ErrAllProvidersFailed):
		// a provider timing out inside the chain is still a chain failure
		return fiber.StatusInternalServerError
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
