// Package notify delivers generated content by email.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/chynybekuuludastan/content_gateway/internal/config"
)

var (
	ErrNotConfigured = errors.New("email delivery is not configured")
	ErrMissingField  = errors.New("missing required email field")
)

// Logger is the logging surface notify needs
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Email is one outgoing message
type Email struct {
	From    string   `json:"from,omitempty"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// Validate checks the fields every sender needs
func (e Email) Validate() error {
	if len(e.To) == 0 {
		return fmt.Errorf("%w: to", ErrMissingField)
	}
	for _, to := range e.To {
		if strings.TrimSpace(to) == "" {
			return fmt.Errorf("%w: to", ErrMissingField)
		}
	}
	if strings.TrimSpace(e.Subject) == "" {
		return fmt.Errorf("%w: subject", ErrMissingField)
	}
	return nil
}

// Sender delivers an email and returns the delivery id
type Sender interface {
	Send(ctx context.Context, email Email) (string, error)
}

// NewFromConfig picks Resend when a key is set, then the external endpoint,
// otherwise a sender that always fails with ErrNotConfigured.
func NewFromConfig(cfg *config.Config, logger Logger) Sender {
	switch {
	case cfg.ResendAPIKey != "":
		return NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom, logger)
	case cfg.SendEmailURL != "":
		return NewEndpointSender(cfg.SendEmailURL, cfg.EmailFrom, &http.Client{Timeout: 30 * time.Second}, logger)
	default:
		return disabledSender{}
	}
}

type disabledSender struct{}

func (disabledSender) Send(context.Context, Email) (string, error) {
	return "", ErrNotConfigured
}

// ResendSender sends through the Resend API
type ResendSender struct {
	client *resend.Client
	from   string
	logger Logger
}

// NewResendSender creates a Resend-backed sender
func NewResendSender(apiKey, from string, logger Logger) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}
}

// Send implements Sender
func (s *ResendSender) Send(ctx context.Context, email Email) (string, error) {
	if err := email.Validate(); err != nil {
		return "", err
	}

	params := &resend.SendEmailRequest{
		From:    orDefault(email.From, s.from),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.logger.Error("Resend delivery failed", "error", err, "recipients", len(email.To))
		return "", fmt.Errorf("resend: %w", err)
	}

	s.logger.Info("Email sent", "sender", "resend", "id", sent.Id, "recipients", len(email.To))
	return sent.Id, nil
}

// EndpointSender POSTs the email as JSON to an external sending endpoint
type EndpointSender struct {
	url        string
	from       string
	httpClient *http.Client
	logger     Logger
}

// NewEndpointSender creates a sender for SEND_EMAIL_URL
func NewEndpointSender(url, from string, client *http.Client, logger Logger) *EndpointSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &EndpointSender{url: url, from: from, httpClient: client, logger: logger}
}

type endpointResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Send implements Sender
func (s *EndpointSender) Send(ctx context.Context, email Email) (string, error) {
	if err := email.Validate(); err != nil {
		return "", err
	}
	email.From = orDefault(email.From, s.from)

	body, err := json.Marshal(email)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send-email request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Error("Email endpoint error", "status", resp.Status, "body", string(respBody))
		return "", fmt.Errorf("send-email endpoint returned %d", resp.StatusCode)
	}

	var decoded endpointResponse
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &decoded); err != nil {
			return "", fmt.Errorf("failed to decode send-email response: %w", err)
		}
	}
	if decoded.Error != "" {
		return "", fmt.Errorf("send-email endpoint: %s", decoded.Error)
	}

	s.logger.Info("Email sent", "sender", "endpoint", "id", decoded.ID, "recipients", len(email.To))
	return decoded.ID, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
