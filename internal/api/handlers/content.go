package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/chynybekuuludastan/content_gateway/internal/models"
	"github.com/chynybekuuludastan/content_gateway/internal/repository"
)

var validKinds = map[string]bool{
	models.KindPromo:         true,
	models.KindEmailTemplate: true,
	models.KindText:          true,
	models.KindAgent:         true,
}

// ContentHandler serves the saved content library
type ContentHandler struct {
	Repo   repository.ContentRepository
	Logger Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(repo repository.ContentRepository, logger Logger) *ContentHandler {
	return &ContentHandler{Repo: repo, Logger: logger}
}

// SaveContentRequest represents a request to keep generated content
type SaveContentRequest struct {
	Kind       string                 `json:"kind" example:"promo"`
	Title      string                 `json:"title"`
	Body       string                 `json:"body"`
	CTA        string                 `json:"cta"`
	HTML       string                 `json:"html"`
	Provider   string                 `json:"provider" example:"gemini"`
	Tags       []string               `json:"tags"`
	Parameters map[string]interface{} `json:"parameters"`
}

// CreateContent godoc
// @Summary Save generated content
// @Tags content
// @Accept json
// @Produce json
// @Param request body SaveContentRequest true "Content"
// @Success 201 {object} SuccessResponse{data=models.SavedContent}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/content [post]
func (h *ContentHandler) CreateContent(c *fiber.Ctx) error {
	req := new(SaveContentRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body: " + err.Error(),
		})
	}

	req.Kind = strings.TrimSpace(req.Kind)
	if !validKinds[req.Kind] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "kind must be one of promo, email_template, text, agent",
		})
	}

	content := models.SavedContent{
		Kind:     req.Kind,
		Title:    req.Title,
		Body:     req.Body,
		CTA:      req.CTA,
		HTML:     req.HTML,
		Provider: req.Provider,
	}
	if len(req.Tags) > 0 {
		tags, _ := json.Marshal(req.Tags)
		content.Tags = datatypes.JSON(tags)
	}
	if len(req.Parameters) > 0 {
		params, err := json.Marshal(req.Parameters)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid parameters: " + err.Error(),
			})
		}
		content.Parameters = datatypes.JSON(params)
	}

	if err := h.Repo.Save(c.UserContext(), &content); err != nil {
		h.Logger.Error("Failed to save content", "error", err, "kind", content.Kind)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to save content",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    content,
	})
}

// ListContent godoc
// @Summary List saved content
// @Tags content
// @Produce json
// @Param kind query string false "Filter by kind"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} SuccessResponse{data=[]models.SavedContent}
// @Failure 500 {object} ErrorResponse
// @Router /api/content [get]
func (h *ContentHandler) ListContent(c *fiber.Ctx) error {
	filter := repository.ContentFilter{
		Kind:   c.Query("kind"),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}

	contents, total, err := h.Repo.List(c.UserContext(), filter)
	if err != nil {
		h.Logger.Error("Failed to list content", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch content",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    contents,
		"total":   total,
	})
}

// GetContent godoc
// @Summary Get saved content
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} SuccessResponse{data=models.SavedContent}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/content/{id} [get]
func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	contentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid content ID",
		})
	}

	content, err := h.Repo.Get(c.UserContext(), contentID)
	if err != nil {
		return h.lookupError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    content,
	})
}

// DeleteContent godoc
// @Summary Delete saved content
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/content/{id} [delete]
func (h *ContentHandler) DeleteContent(c *fiber.Ctx) error {
	contentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid content ID",
		})
	}

	if err := h.Repo.Remove(c.UserContext(), contentID); err != nil {
		return h.lookupError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Content deleted successfully",
	})
}

func (h *ContentHandler) lookupError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Content not found",
		})
	}

	h.Logger.Error("Content lookup failed", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Failed to fetch content",
	})
}

// ContentDisabled answers every library route when no database is configured
func ContentDisabled(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"success": false,
		"error":   "Content library is disabled: POSTGRES_URI is not set",
	})
}
