package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/chynybekuuludastan/content_gateway/internal/service/llm"
)

const (
	openAIBaseURL      = "https://api.openai.com/v1"
	openAIDefaultModel = "gpt-4o-mini"
	openAIMaxTokens    = 4096
)

// ChatMessage represents a message in an OpenAI-compatible chat API
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to an OpenAI-compatible chat completions API
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse represents the response from an OpenAI-compatible chat completions API
type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// chatCompletionsClient speaks the chat completions dialect shared by OpenAI and Mistral
type chatCompletionsClient struct {
	name       string
	keyEnv     string
	apiKey     string
	model      string
	baseURL    string
	maxTokens  int
	httpClient *http.Client
	logger     llm.Logger
}

// OpenAIProvider implements the Provider interface for OpenAI
type OpenAIProvider struct {
	chatCompletionsClient
}

// NewOpenAIProvider creates a new OpenAI provider.
// An empty API key is accepted; Generate then fails with a configuration error.
func NewOpenAIProvider(opts Options) *OpenAIProvider {
	opts.setDefaults(openAIDefaultModel, openAIBaseURL)
	return &OpenAIProvider{chatCompletionsClient{
		name:       "openai",
		keyEnv:     "OPENAI_API_KEY",
		apiKey:     opts.APIKey,
		model:      opts.Model,
		baseURL:    opts.BaseURL,
		maxTokens:  openAIMaxTokens,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}}
}

// Name returns the provider name
func (c *chatCompletionsClient) Name() string {
	return c.name
}

// Generate implements the Provider interface
func (c *chatCompletionsClient) Generate(ctx context.Context, request *llm.CompletionRequest) (*llm.ProviderResult, error) {
	if c.apiKey == "" {
		return nil, llm.NewConfigError(c.name, c.keyEnv)
	}

	messages := make([]ChatMessage, 0, 2)
	if request.System != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: request.System})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: request.Prompt})

	apiRequest := ChatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: request.Temperature,
		MaxTokens:   clampTokens(request.MaxTokens, c.maxTokens),
	}

	apiResponse, err := c.makeRequest(ctx, apiRequest)
	if err != nil {
		return nil, err
	}

	if len(apiResponse.Choices) == 0 {
		return nil, &llm.ShapeError{Provider: c.name, Detail: "empty choices"}
	}

	text := strings.TrimSpace(apiResponse.Choices[0].Message.Content)
	if text == "" {
		return nil, &llm.ShapeError{Provider: c.name, Detail: "empty message content"}
	}

	model := apiResponse.Model
	if model == "" {
		model = c.model
	}

	return &llm.ProviderResult{Provider: c.name, Model: model, Text: text}, nil
}

// makeRequest sends a request to the chat completions endpoint
func (c *chatCompletionsClient) makeRequest(ctx context.Context, request ChatRequest) (*ChatResponse, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal request: %w", c.name, err)
	}

	url := strings.TrimRight(c.baseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create HTTP request: %w", c.name, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: HTTP request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response body: %w", c.name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Chat completions API error",
			"provider", c.name,
			"status", resp.Status,
			"body", string(body))
		return nil, &llm.HTTPError{Provider: c.name, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var apiResponse ChatResponse
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, &llm.ShapeError{Provider: c.name, Detail: "invalid JSON: " + err.Error()}
	}

	return &apiResponse, nil
}
