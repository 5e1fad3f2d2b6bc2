package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/chynybekuuludastan/content_gateway/internal/service/llm"
)

const (
	anthropicDefaultModel = "claude-3-5-haiku-latest"
	anthropicMaxTokens    = 4096
)

// AnthropicProvider implements the Provider interface for Anthropic's Messages API
type AnthropicProvider struct {
	apiKey string
	model  string
	client anthropic.Client
	logger llm.Logger
}

// NewAnthropicProvider creates a new Anthropic provider.
// SDK retries are disabled: the fallback chain moves to the next provider instead.
func NewAnthropicProvider(opts Options) *AnthropicProvider {
	opts.setDefaults(anthropicDefaultModel, "")

	clientOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithHTTPClient(opts.HTTPClient),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	return &AnthropicProvider{
		apiKey: opts.APIKey,
		model:  opts.Model,
		client: anthropic.NewClient(clientOpts...),
		logger: opts.Logger,
	}
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Generate implements the Provider interface
func (p *AnthropicProvider) Generate(ctx context.Context, request *llm.CompletionRequest) (*llm.ProviderResult, error) {
	if p.apiKey == "" {
		return nil, llm.NewConfigError(p.Name(), "ANTHROPIC_API_KEY")
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   int64(clampTokens(request.MaxTokens, anthropicMaxTokens)),
		Temperature: anthropic.Float(float64(request.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(request.Prompt)),
		},
	}
	if request.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: request.System}}
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			p.logger.Error("Anthropic API error", "status", apiErr.StatusCode, "error", apiErr.Error())
			return nil, &llm.HTTPError{Provider: p.Name(), StatusCode: apiErr.StatusCode, Body: apiErr.Error()}
		}
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, &llm.ShapeError{Provider: p.Name(), Detail: "no text content blocks"}
	}

	model := string(message.Model)
	if model == "" {
		model = p.model
	}

	return &llm.ProviderResult{Provider: p.Name(), Model: model, Text: text}, nil
}
