// Package generator orchestrates the gateway endpoints: prompt rendering,
// the provider chain, post-processing and the per-endpoint failure policy.
//
//	generate-promo           canned promo, provider "fallback"
//	generate-email-template  canned HTML template
//	generate-text            error (HTTP 500)
//	multi-agent-generate     error (HTTP 500)
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/chynybekuuludastan/content_gateway/internal/notify"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/prompts"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/structure"
)

const (
	promoTemperature    = 0.7
	promoMaxTokens      = 1024
	templateTemperature = 0.4
	templateMaxTokens   = 2048
	textTemperature     = 0.7
	textMaxTokens       = 1024
	agentMaxTokens      = 2048

	defaultEmailSubject = "Your generated content"
)

// InputError is a caller mistake detected before any provider is invoked
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func invalidInput(format string, args ...interface{}) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// Completer runs a completion through the provider chain; *llm.Service implements it
type Completer interface {
	Generate(ctx context.Context, request *llm.CompletionRequest, preferred string) (*llm.ProviderResult, error)
}

// Service implements the gateway operations
type Service struct {
	completer  Completer
	prompts    *prompts.Generator
	structurer structure.Structurer
	sender     notify.Sender
	logger     llm.Logger
}

// Options configures a Service
type Options struct {
	Completer  Completer
	Structurer structure.Structurer
	Sender     notify.Sender
	Logger     llm.Logger
}

// NewService creates a generation service
func NewService(opts Options) *Service {
	if opts.Structurer == nil {
		opts.Structurer = structure.LabelStructurer{}
	}
	if opts.Logger == nil {
		opts.Logger = llm.NopLogger()
	}
	return &Service{
		completer:  opts.Completer,
		prompts:    prompts.NewGenerator(),
		structurer: opts.Structurer,
		sender:     opts.Sender,
		logger:     opts.Logger,
	}
}

// PromoResult is the generate-promo response
type PromoResult struct {
	Title           string   `json:"title"`
	Body            string   `json:"body"`
	CTA             string   `json:"cta"`
	ShortVersion    string   `json:"shortVersion,omitempty"`
	Provider        string   `json:"provider"`
	RecommendedTags []string `json:"recommendedTags,omitempty"`
}

func newPromoResult(content structure.StructuredContent, provider string) *PromoResult {
	return &PromoResult{
		Title:           content.Title,
		Body:            content.Body,
		CTA:             content.CTA,
		ShortVersion:    content.ShortVersion,
		Provider:        provider,
		RecommendedTags: content.Tags,
	}
}

// GeneratePromo produces promotional copy; total provider failure yields the canned promo
func (s *Service) GeneratePromo(ctx context.Context, request prompts.PromoRequest) (*PromoResult, error) {
	completion := &llm.CompletionRequest{
		Prompt:      s.prompts.PromoPrompt(request),
		System:      prompts.MarketingSystem,
		Temperature: promoTemperature,
		MaxTokens:   promoMaxTokens,
	}

	result, err := s.completer.Generate(ctx, completion, "")
	if err != nil {
		if errors.Is(err, llm.ErrAllProvidersFailed) {
			s.logger.Warn("All providers failed, using canned promo", "error", err)
			return newPromoResult(CannedPromo(request), FallbackProvider), nil
		}
		return nil, err
	}

	content := s.structurer.Parse(llm.CleanCodeBlocks(result.Text))
	if content.CTA == "" {
		content.CTA = structure.DefaultCTA
	}
	return newPromoResult(content, result.Provider), nil
}

// TemplateResult is the generate-email-template response
type TemplateResult struct {
	Template string `json:"template"`
	Provider string `json:"provider"`
}

// GenerateEmailTemplate produces a complete HTML email; total provider failure
// yields the canned template
func (s *Service) GenerateEmailTemplate(ctx context.Context, request prompts.EmailTemplateRequest) (*TemplateResult, error) {
	if request.Type != "" && !request.Type.Valid() {
		return nil, invalidInput("unsupported template type %q", request.Type)
	}

	completion := &llm.CompletionRequest{
		Prompt:      s.prompts.EmailTemplatePrompt(request),
		System:      prompts.EmailSystem,
		Temperature: templateTemperature,
		MaxTokens:   templateMaxTokens,
	}

	result, err := s.completer.Generate(ctx, completion, request.Provider)
	if err != nil {
		if errors.Is(err, llm.ErrAllProvidersFailed) {
			s.logger.Warn("All providers failed, using canned email template", "error", err, "type", request.Type)
			return &TemplateResult{Template: CannedEmailTemplate(request), Provider: FallbackProvider}, nil
		}
		return nil, err
	}

	page, err := SanitizeEmailHTML(result.Text)
	if err != nil {
		s.logger.Error("Provider HTML unusable, using canned email template", "error", err, "provider", result.Provider)
		return &TemplateResult{Template: CannedEmailTemplate(request), Provider: FallbackProvider}, nil
	}

	return &TemplateResult{Template: page, Provider: result.Provider}, nil
}

// TextResult is the generate-text response
type TextResult struct {
	Text     string `json:"text"`
	Prompt   string `json:"prompt"`
	Provider string `json:"provider"`
}

// GenerateText sends the prompt as-is; total provider failure is returned as an error
func (s *Service) GenerateText(ctx context.Context, request prompts.TextRequest) (*TextResult, error) {
	if strings.TrimSpace(request.Prompt) == "" {
		return nil, invalidInput("prompt is required")
	}

	completion := &llm.CompletionRequest{
		Prompt:      request.Prompt,
		Temperature: textTemperature,
		MaxTokens:   textMaxTokens,
	}
	if request.Temperature != nil {
		completion.Temperature = clampTemperature(*request.Temperature)
	}
	if request.MaxTokens != nil && *request.MaxTokens > 0 {
		completion.MaxTokens = *request.MaxTokens
	}

	result, err := s.completer.Generate(ctx, completion, request.Provider)
	if err != nil {
		return nil, err
	}

	return &TextResult{Text: result.Text, Prompt: request.Prompt, Provider: result.Provider}, nil
}

func clampTemperature(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// AgentInput is the multi-agent-generate request body
type AgentInput struct {
	Content        string          `json:"content"`
	AgentType      string          `json:"agentType"`
	Parameters     json.RawMessage `json:"parameters,omitempty"`
	TargetLanguage string          `json:"targetLanguage,omitempty"`
	Domain         string          `json:"domain,omitempty"`
	Provider       string          `json:"provider,omitempty"`
}

// AgentResult is the multi-agent-generate response
type AgentResult struct {
	Text     string                 `json:"text"`
	Provider string                 `json:"provider"`
	Model    string                 `json:"model"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GenerateWithAgent runs one agent transformation and optionally emails the result.
// Email delivery problems are reported in metadata and never fail the call.
func (s *Service) GenerateWithAgent(ctx context.Context, input AgentInput) (*AgentResult, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, invalidInput("content is required")
	}
	if input.AgentType == "" {
		return nil, invalidInput("agentType is required")
	}

	agentType := prompts.AgentType(strings.ToLower(input.AgentType))
	params, err := prompts.DecodeAgentParams(agentType, input.Parameters)
	if err != nil {
		return nil, invalidInput("%v", err)
	}

	completion := &llm.CompletionRequest{
		Prompt: s.prompts.AgentPrompt(prompts.AgentRequest{
			Content:        input.Content,
			Params:         params,
			TargetLanguage: input.TargetLanguage,
			Domain:         input.Domain,
		}),
		System:      prompts.MarketingSystem,
		Temperature: agentType.Temperature(),
		MaxTokens:   agentMaxTokens,
	}

	result, err := s.completer.Generate(ctx, completion, input.Provider)
	if err != nil {
		return nil, err
	}

	text := llm.CleanCodeBlocks(result.Text)
	metadata := map[string]interface{}{
		"agentType":   string(agentType),
		"temperature": completion.Temperature,
	}
	if input.TargetLanguage != "" {
		metadata["targetLanguage"] = input.TargetLanguage
	}

	if delivery := params.DeliveryOptions(); delivery.SendEmail {
		s.deliver(ctx, delivery, text, metadata)
	}

	return &AgentResult{
		Text:     text,
		Provider: result.Provider,
		Model:    result.Model,
		Metadata: metadata,
	}, nil
}

func (s *Service) deliver(ctx context.Context, delivery prompts.Delivery, text string, metadata map[string]interface{}) {
	metadata["emailSent"] = false

	if strings.TrimSpace(delivery.To) == "" {
		metadata["emailError"] = "no recipient given"
		return
	}
	if s.sender == nil {
		metadata["emailError"] = notify.ErrNotConfigured.Error()
		return
	}

	subject := delivery.Subject
	if subject == "" {
		first, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
		if strings.HasPrefix(first, "Subject:") {
			subject = strings.TrimSpace(strings.TrimPrefix(first, "Subject:"))
		}
	}
	if subject == "" {
		subject = defaultEmailSubject
	}

	id, err := s.sender.Send(ctx, notify.Email{
		To:      []string{delivery.To},
		Subject: subject,
		HTML:    textToHTML(text),
		Text:    text,
	})
	if err != nil {
		s.logger.Warn("Chained email delivery failed", "error", err)
		metadata["emailError"] = err.Error()
		return
	}

	metadata["emailSent"] = true
	if id != "" {
		metadata["emailId"] = id
	}
}

// SendEmail delivers an email directly (send-email endpoint)
func (s *Service) SendEmail(ctx context.Context, email notify.Email) (string, error) {
	if err := email.Validate(); err != nil {
		return "", invalidInput("%v", err)
	}
	if s.sender == nil {
		return "", notify.ErrNotConfigured
	}
	return s.sender.Send(ctx, email)
}

func textToHTML(text string) string {
	paragraphs := strings.Split(strings.TrimSpace(text), "\n\n")
	var sb strings.Builder
	for _, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.ReplaceAll(html.EscapeString(p), "\n", "<br>"))
		sb.WriteString("</p>\n")
	}
	return sb.String()
}
