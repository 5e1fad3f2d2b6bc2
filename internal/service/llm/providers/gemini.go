package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/chynybekuuludastan/content_gateway/internal/service/llm"
)

const (
	geminiDefaultModel = "gemini-1.5-flash"
	geminiMaxTokens    = 8192
)

// GeminiProvider implements the Provider interface for Google's Gemini API
type GeminiProvider struct {
	apiKey    string
	modelName string
	timeout   time.Duration
	logger    llm.Logger

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider using the official client.
// The client is created on first use so a missing key costs no network call.
func NewGeminiProvider(opts Options) *GeminiProvider {
	opts.setDefaults(geminiDefaultModel, "")
	return &GeminiProvider{
		apiKey:    opts.APIKey,
		modelName: opts.Model,
		timeout:   opts.HTTPClient.Timeout,
		logger:    opts.Logger,
	}
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) getClient() (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	p.client = client
	return client, nil
}

// Generate implements the Provider interface
func (p *GeminiProvider) Generate(ctx context.Context, request *llm.CompletionRequest) (*llm.ProviderResult, error) {
	if p.apiKey == "" {
		return nil, llm.NewConfigError(p.Name(), "GEMINI_API_KEY")
	}

	client, err := p.getClient()
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	model := client.GenerativeModel(p.modelName)
	model.SetTemperature(request.Temperature)
	model.SetMaxOutputTokens(int32(clampTokens(request.MaxTokens, geminiMaxTokens)))
	if request.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(request.System)}}
	}

	p.logger.Debug("Sending prompt to Gemini", "model", p.modelName, "prompt_length", len(request.Prompt))

	resp, err := model.GenerateContent(ctx, genai.Text(request.Prompt))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, &llm.HTTPError{Provider: p.Name(), StatusCode: apiErr.Code, Body: apiErr.Message}
		}
		return nil, fmt.Errorf("gemini: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		return nil, &llm.ShapeError{Provider: p.Name(), Detail: fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason)}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, &llm.ShapeError{Provider: p.Name(), Detail: "no candidates"}
	}

	// Extract text from response
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, &llm.ShapeError{Provider: p.Name(), Detail: "candidate has no text parts"}
	}

	return &llm.ProviderResult{Provider: p.Name(), Model: p.modelName, Text: text}, nil
}

// Close closes the Gemini client
func (p *GeminiProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		err := p.client.Close()
		p.client = nil
		return err
	}
	return nil
}
