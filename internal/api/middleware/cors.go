package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Headers browser clients of the gateway functions send
const (
	EdgeAllowOrigin  = "*"
	EdgeAllowHeaders = "authorization, x-client-info, apikey, content-type"
	EdgeAllowMethods = "POST, OPTIONS"
)

// EdgeCORS sets the permissive gateway CORS headers on every response and
// answers preflight requests itself, with no body, before anything else runs.
func EdgeCORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, EdgeAllowOrigin)
		c.Set(fiber.HeaderAccessControlAllowHeaders, EdgeAllowHeaders)
		c.Set(fiber.HeaderAccessControlAllowMethods, EdgeAllowMethods)

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
