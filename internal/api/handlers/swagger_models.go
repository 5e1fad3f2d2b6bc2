package handlers

// This file contains model definitions for Swagger documentation

// ErrorResponse represents an error response of the /api routes
// @Description Error response
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`       // Success status
	Error   string `json:"error" example:"Error message"` // Error message
}

// SuccessResponse represents a success response of the /api routes
// @Description Success response
type SuccessResponse struct {
	Success bool        `json:"success" example:"true"` // Success status
	Data    interface{} `json:"data"`                   // Response data
}

// HealthResponse represents the health check payload
// @Description Health check
type HealthResponse struct {
	Status    string   `json:"status" example:"ok"`
	Providers []string `json:"providers" example:"gemini,openai,anthropic,mistral"`
}
