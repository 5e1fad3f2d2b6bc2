package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/tokens"
)

// UsageReader reads the per-provider usage ledger
type UsageReader interface {
	DailyUsage(ctx context.Context, day time.Time) ([]tokens.ProviderUsage, error)
}

// UsageHandler serves provider usage totals
type UsageHandler struct {
	Ledger UsageReader
	Logger Logger
	now    func() time.Time
}

// NewUsageHandler creates a new usage handler
func NewUsageHandler(ledger UsageReader, logger Logger) *UsageHandler {
	return &UsageHandler{Ledger: ledger, Logger: logger, now: time.Now}
}

// GetUsage godoc
// @Summary Provider usage for a day
// @Description Requests and estimated tokens per provider, recorded after each successful generation.
// @Tags usage
// @Produce json
// @Param day query string false "Day (YYYY-MM-DD, UTC), defaults to today"
// @Success 200 {object} SuccessResponse{data=UsageResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/usage [get]
func (h *UsageHandler) GetUsage(c *fiber.Ctx) error {
	day := h.now().UTC()
	if raw := c.Query("day"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "day must be formatted as YYYY-MM-DD",
			})
		}
		day = parsed
	}

	usage, err := h.Ledger.DailyUsage(c.UserContext(), day)
	if err != nil {
		h.Logger.Error("Failed to read usage", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read usage",
		})
	}
	if usage == nil {
		usage = []tokens.ProviderUsage{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": UsageResponse{
			Day:       day.Format("2006-01-02"),
			Providers: usage,
		},
	})
}

// UsageResponse is the usage payload
type UsageResponse struct {
	Day       string                 `json:"day" example:"2026-10-18"`
	Providers []tokens.ProviderUsage `json:"providers"`
}
