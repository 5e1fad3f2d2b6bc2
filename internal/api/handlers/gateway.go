package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/chynybekuuludastan/content_gateway/internal/api/middleware"
	"github.com/chynybekuuludastan/content_gateway/internal/notify"
	"github.com/chynybekuuludastan/content_gateway/internal/service/generator"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/prompts"
)

// ContentGenerator is implemented by generator.Service
type ContentGenerator interface {
	GeneratePromo(ctx context.Context, request prompts.PromoRequest) (*generator.PromoResult, error)
	GenerateEmailTemplate(ctx context.Context, request prompts.EmailTemplateRequest) (*generator.TemplateResult, error)
	GenerateText(ctx context.Context, request prompts.TextRequest) (*generator.TextResult, error)
	GenerateWithAgent(ctx context.Context, input generator.AgentInput) (*generator.AgentResult, error)
	SendEmail(ctx context.Context, email notify.Email) (string, error)
}

// GatewayHandler serves the content generation functions
type GatewayHandler struct {
	Generator ContentGenerator
	Logger    Logger
}

// NewGatewayHandler creates a new gateway handler
func NewGatewayHandler(gen ContentGenerator, logger Logger) *GatewayHandler {
	return &GatewayHandler{Generator: gen, Logger: logger}
}

func (h *GatewayHandler) fail(c *fiber.Ctx, operation string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.Logger.Error("Generation failed",
			"operation", operation,
			"request_id", middleware.GetRequestID(c),
			"reason", llm.Reason(err),
			"error", err)
	}
	return gatewayError(c, status, err.Error())
}

// GeneratePromo godoc
// @Summary Generate promotional content
// @Description Renders the promo parameters into a prompt, runs the provider chain and splits the answer into title, body and CTA. Falls back to canned content when every provider fails.
// @Tags gateway
// @Accept json
// @Produce json
// @Param request body prompts.PromoRequest false "Promo parameters"
// @Success 200 {object} generator.PromoResult
// @Failure 400 {object} GatewayErrorResponse
// @Failure 500 {object} GatewayErrorResponse
// @Router /functions/v1/generate-promo [post]
func (h *GatewayHandler) GeneratePromo(c *fiber.Ctx) error {
	var req prompts.PromoRequest
	if err := parseJSON(c, &req); err != nil {
		return gatewayError(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	result, err := h.Generator.GeneratePromo(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "generate-promo", err)
	}
	return c.JSON(result)
}

// GenerateEmailTemplate godoc
// @Summary Generate an HTML email template
// @Description Builds a complete HTML email for the template type. Falls back to a canned template when every provider fails.
// @Tags gateway
// @Accept json
// @Produce json
// @Param request body prompts.EmailTemplateRequest true "Template parameters"
// @Success 200 {object} generator.TemplateResult
// @Failure 400 {object} GatewayErrorResponse
// @Failure 500 {object} GatewayErrorResponse
// @Router /functions/v1/generate-email-template [post]
func (h *GatewayHandler) GenerateEmailTemplate(c *fiber.Ctx) error {
	var req prompts.EmailTemplateRequest
	if err := parseJSON(c, &req); err != nil {
		return gatewayError(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	result, err := h.Generator.GenerateEmailTemplate(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "generate-email-template", err)
	}
	return c.JSON(result)
}

// GenerateText godoc
// @Summary Generate free text
// @Description Sends the prompt through the provider chain. Answers 500 when every provider fails.
// @Tags gateway
// @Accept json
// @Produce json
// @Param request body prompts.TextRequest true "Prompt"
// @Success 200 {object} generator.TextResult
// @Failure 400 {object} GatewayErrorResponse
// @Failure 500 {object} GatewayErrorResponse
// @Router /functions/v1/generate-text [post]
func (h *GatewayHandler) GenerateText(c *fiber.Ctx) error {
	var req prompts.TextRequest
	if err := parseJSON(c, &req); err != nil {
		return gatewayError(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	result, err := h.Generator.GenerateText(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "generate-text", err)
	}
	return c.JSON(result)
}

// MultiAgentGenerate godoc
// @Summary Transform content with an agent
// @Description Runs a translate, enhance, summarize, seo, social or email agent over the content and optionally emails the result.
// @Tags gateway
// @Accept json
// @Produce json
// @Param request body generator.AgentInput true "Agent request"
// @Success 200 {object} generator.AgentResult
// @Failure 400 {object} GatewayErrorResponse
// @Failure 500 {object} GatewayErrorResponse
// @Router /functions/v1/multi-agent-generate [post]
func (h *GatewayHandler) MultiAgentGenerate(c *fiber.Ctx) error {
	var req generator.AgentInput
	if err := parseJSON(c, &req); err != nil {
		return gatewayError(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	result, err := h.Generator.GenerateWithAgent(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "multi-agent-generate", err)
	}
	return c.JSON(result)
}

// Recipients accepts either a single address or a list
type Recipients []string

// UnmarshalJSON implements json.Unmarshaler
func (r *Recipients) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*r = nil
		} else {
			*r = Recipients{single}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("to must be a string or a list of strings")
	}
	*r = list
	return nil
}

// SendEmailRequest is the send-email body
type SendEmailRequest struct {
	To      Recipients `json:"to" swaggertype:"array,string"`
	Subject string     `json:"subject"`
	HTML    string     `json:"html,omitempty"`
	Text    string     `json:"text,omitempty"`
	From    string     `json:"from,omitempty"`
}

// SendEmail godoc
// @Summary Send an email
// @Description Delivers generated content through the configured email sender.
// @Tags gateway
// @Accept json
// @Produce json
// @Param request body SendEmailRequest true "Email"
// @Success 200 {object} SendEmailResponse
// @Failure 400 {object} GatewayErrorResponse
// @Failure 503 {object} GatewayErrorResponse
// @Router /functions/v1/send-email [post]
func (h *GatewayHandler) SendEmail(c *fiber.Ctx) error {
	var req SendEmailRequest
	if err := parseJSON(c, &req); err != nil {
		return gatewayError(c, fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	id, err := h.Generator.SendEmail(c.UserContext(), notify.Email{
		From:    req.From,
		To:      req.To,
		Subject: req.Subject,
		HTML:    req.HTML,
		Text:    req.Text,
	})
	if err != nil {
		return h.fail(c, "send-email", err)
	}
	return c.JSON(SendEmailResponse{Success: true, ID: id})
}

// SendEmailResponse is returned by send-email
type SendEmailResponse struct {
	Success bool   `json:"success" example:"true"`
	ID      string `json:"id,omitempty" example:"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"`
}

// GatewayErrorResponse is the error body of the gateway functions
type GatewayErrorResponse struct {
	Error string `json:"error" example:"prompt is required"`
}
