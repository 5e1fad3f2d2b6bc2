package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrMissingAPIKey      = errors.New("API key not configured")
	ErrNoUsableText       = errors.New("provider returned no usable text")
	ErrAllProvidersFailed = errors.New("all providers failed")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrInvalidProvider    = errors.New("invalid LLM provider specified")
)

const maxErrorBody = 512

// ConfigError reports a provider that cannot be called because its key is absent.
// It is returned before any network traffic happens.
type ConfigError struct {
	Provider string
	Key      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s is not set: %v", e.Provider, e.Key, ErrMissingAPIKey)
}

func (e *ConfigError) Unwrap() error { return ErrMissingAPIKey }

// HTTPError is a non-2xx answer from a vendor API.
type HTTPError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.StatusCode, body)
}

// ShapeError is a 2xx answer whose body has no candidate/choice text.
type ShapeError struct {
	Provider string
	Detail   string
}

func (e *ShapeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Provider, ErrNoUsableText)
	}
	return fmt.Sprintf("%s: %v: %s", e.Provider, ErrNoUsableText, e.Detail)
}

func (e *ShapeError) Unwrap() error { return ErrNoUsableText }

// AttemptError records why one provider in a chain failed.
type AttemptError struct {
	Provider string
	Err      error
}

// ChainError is returned when every attempt of a fallback chain failed.
type ChainError struct {
	Attempts []AttemptError
}

func (e *ChainError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("%v: no providers configured", ErrAllProvidersFailed)
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Err.Error())
	}
	return fmt.Sprintf("%v: %s", ErrAllProvidersFailed, strings.Join(parts, "; "))
}

func (e *ChainError) Is(target error) bool {
	return target == ErrAllProvidersFailed
}

func (e *ChainError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}

// NewConfigError builds the error adapters return when their API key is empty.
func NewConfigError(provider, key string) error {
	return &ConfigError{Provider: provider, Key: key}
}

// Reason classifies an adapter error for log lines.
func Reason(err error) string {
	var (
		cfgErr   *ConfigError
		httpErr  *HTTPError
		shapeErr *ShapeError
	)
	switch {
	case errors.As(err, &cfgErr):
		return "not_configured"
	case errors.As(err, &httpErr):
		return "http_error"
	case errors.As(err, &shapeErr):
		return "bad_response"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "transport_error"
	}
}
