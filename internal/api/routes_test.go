package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chynybekuuludastan/content_gateway/internal/config"
	"github.com/chynybekuuludastan/content_gateway/internal/logger"
	"github.com/chynybekuuludastan/content_gateway/internal/models"
	"github.com/chynybekuuludastan/content_gateway/internal/notify"
	"github.com/chynybekuuludastan/content_gateway/internal/repository"
	"github.com/chynybekuuludastan/content_gateway/internal/service/generator"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/prompts"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/tokens"
)

type scriptedProvider struct {
	name  string
	text  string
	err   error
	mu    sync.Mutex
	calls int
}

func (p *scriptedProvider) Name() string { return p.name }

func (p *scriptedProvider) Generate(ctx context.Context, request *llm.CompletionRequest) (*llm.ProviderResult, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return &llm.ProviderResult{Provider: p.name, Model: p.name + "-1", Text: p.text}, nil
}

func (p *scriptedProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type memoryContents struct {
	items map[uuid.UUID]models.SavedContent
}

func newMemoryContents() *memoryContents {
	return &memoryContents{items: make(map[uuid.UUID]models.SavedContent)}
}

func (m *memoryContents) Save(ctx context.Context, content *models.SavedContent) error {
	content.ID = uuid.New()
	m.items[content.ID] = *content
	return nil
}

func (m *memoryContents) Get(ctx context.Context, id uuid.UUID) (*models.SavedContent, error) {
	content, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &content, nil
}

func (m *memoryContents) List(ctx context.Context, filter repository.ContentFilter) ([]models.SavedContent, int64, error) {
	var out []models.SavedContent
	for _, c := range m.items {
		if filter.Kind == "" || c.Kind == filter.Kind {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memoryContents) Remove(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type testEnv struct {
	app      *fiber.App
	llm      *llm.Service
	tracker  *tokens.Tracker
	contents *memoryContents
}

func newTestEnv(t *testing.T, contents repository.ContentRepository, chain ...llm.Provider) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	tracker := tokens.NewTracker(client)

	log := logger.NewNop()
	llmService := llm.NewService(llm.ServiceOptions{Usage: tracker, Logger: log})
	for _, p := range chain {
		llmService.RegisterProvider(p)
	}

	gen := generator.NewService(generator.Options{
		Completer: llmService,
		Sender:    notify.NewFromConfig(&config.Config{}, log),
		Logger:    log,
	})

	app := fiber.New()
	SetupRoutes(app, Dependencies{
		Generator: gen,
		Contents:  contents,
		Usage:     tracker,
		Providers: llmService.ProviderNames,
		Logger:    log,
	})

	env := &testEnv{app: app, llm: llmService, tracker: tracker}
	if mc, ok := contents.(*memoryContents); ok {
		env.contents = mc
	}
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func TestPreflightOnEveryGatewayFunction(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, fn := range []string{"generate-promo", "generate-email-template", "generate-text", "multi-agent-generate", "send-email"} {
		t.Run(fn, func(t *testing.T) {
			resp, body := env.do(t, fiber.MethodOptions, "/functions/v1/"+fn, nil)

			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
			assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "authorization, x-client-info, apikey, content-type", resp.Header.Get("Access-Control-Allow-Headers"))
			assert.Empty(t, body)
		})
	}
}

func TestGenerateTextWithoutPromptIsRejected(t *testing.T) {
	provider := &scriptedProvider{name: "openai", text: "unused"}
	env := newTestEnv(t, nil, provider)

	for _, body := range []interface{}{nil, map[string]string{}, map[string]string{"prompt": ""}} {
		resp, raw := env.do(t, fiber.MethodPost, "/functions/v1/generate-text", body)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"error":"prompt is required"}`, string(raw))
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	}
	assert.Zero(t, provider.Calls())
}

func TestGenerateTextFallsThrough(t *testing.T) {
	first := &scriptedProvider{name: "gemini", err: &llm.HTTPError{Provider: "gemini", StatusCode: 500, Body: "down"}}
	second := &scriptedProvider{name: "openai", text: "Hello there"}
	env := newTestEnv(t, nil, first, second)

	resp, raw := env.do(t, fiber.MethodPost, "/functions/v1/generate-text", map[string]string{"prompt": "Say hello"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result generator.TextResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, generator.TextResult{Text: "Hello there", Prompt: "Say hello", Provider: "openai"}, result)
	assert.Equal(t, 1, first.Calls())

	usage, err := env.tracker.DailyUsage(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, "openai", usage[0].Provider)
	assert.EqualValues(t, 1, usage[0].Requests)
}

func TestGenerateTextTotalFailureIs500(t *testing.T) {
	env := newTestEnv(t, nil,
		&scriptedProvider{name: "gemini", err: llm.NewConfigError("gemini", "GEMINI_API_KEY")},
		&scriptedProvider{name: "openai", err: errors.New("connection refused")},
	)

	resp, raw := env.do(t, fiber.MethodPost, "/functions/v1/generate-text", map[string]string{"prompt": "hi"})

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Contains(t, body["error"], "all providers failed")
}

func TestGenerateTextTotalFailureWithTimedOutProviderIs500(t *testing.T) {
	env := newTestEnv(t, nil,
		&scriptedProvider{name: "gemini", err: fmt.Errorf("gemini: %w", context.DeadlineExceeded)},
		&scriptedProvider{name: "openai", err: &llm.HTTPError{Provider: "openai", StatusCode: 502, Body: "bad gateway"}},
	)

	for _, path := range []string{"/functions/v1/generate-text", "/functions/v1/multi-agent-generate"} {
		resp, raw := env.do(t, fiber.MethodPost, path, map[string]string{"prompt": "hi", "content": "hi", "agentType": "enhance"})

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode, path)
		var body map[string]string
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Contains(t, body["error"], "all providers failed")
	}
}

func TestGeneratePromoTotalFailureIsCanned(t *testing.T) {
	env := newTestEnv(t, nil, &scriptedProvider{name: "gemini", err: llm.NewConfigError("gemini", "GEMINI_API_KEY")})
	request := prompts.PromoRequest{PromoCode: "FALL25", Service: "payroll"}

	resp, raw := env.do(t, fiber.MethodPost, "/functions/v1/generate-promo", request)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result generator.PromoResult
	require.NoError(t, json.Unmarshal(raw, &result))
	canned := generator.CannedPromo(request)
	assert.Equal(t, "fallback", result.Provider)
	assert.Equal(t, canned.Title, result.Title)
	assert.Equal(t, canned.Body, result.Body)
	assert.Equal(t, canned.CTA, result.CTA)
	assert.Equal(t, canned.Tags, result.RecommendedTags)
}

func TestGeneratePromoEmptyBodyUsesDefaults(t *testing.T) {
	provider := &scriptedProvider{name: "mistral", text: "Title: Hi\nText\nCTA: Go"}
	env := newTestEnv(t, nil, provider)

	resp, raw := env.do(t, fiber.MethodPost, "/functions/v1/generate-promo", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"title":"Hi","body":"Text","cta":"Go","provider":"mistral"}`, string(raw))
}

func TestGenerateEmailTemplateTotalFailureIsCanned(t *testing.T) {
	env := newTestEnv(t, nil)
	request := prompts.EmailTemplateRequest{Type: prompts.TemplateWelcome}

	resp, raw := env.do(t, fiber.MethodPost, "/functions/v1/generate-email-template", request)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result generator.TemplateResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, generator.CannedEmailTemplate(request), result.Template)
}

func TestMultiAgentGenerate(t *testing.T) {
	provider := &scriptedProvider{name: "anthropic", text: "Bonjour"}
	env := newTestEnv(t, nil, provider)

	resp, raw := env.do(t, fiber.MethodPost, "/functions/v1/multi-agent-generate", map[string]interface{}{
		"content":        "Hello",
		"agentType":      "translate",
		"targetLanguage": "French",
		"parameters":     map[string]interface{}{"sendEmail": true, "to": "a@b.co"},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result generator.AgentResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, "Bonjour", result.Text)
	assert.Equal(t, "anthropic-1", result.Model)
	assert.Equal(t, false, result.Metadata["emailSent"])
	assert.Equal(t, notify.ErrNotConfigured.Error(), result.Metadata["emailError"])

	resp, _ = env.do(t, fiber.MethodPost, "/functions/v1/multi-agent-generate", map[string]string{"content": "x", "agentType": "poem"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMultiAgentGenerateTotalFailureIs500(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, _ := env.do(t, fiber.MethodPost, "/functions/v1/multi-agent-generate", map[string]string{"content": "x", "agentType": "seo"})
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestSendEmailValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, _ := env.do(t, fiber.MethodPost, "/functions/v1/send-email", map[string]string{"subject": "x"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodPost, "/functions/v1/send-email", map[string]interface{}{"to": 42, "subject": "x"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodPost, "/functions/v1/send-email", map[string]string{"to": "a@b.co", "subject": "x"})
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil, &scriptedProvider{name: "gemini"}, &scriptedProvider{name: "openai"})

	resp, raw := env.do(t, fiber.MethodGet, "/api/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","providers":["gemini","openai"]}`, string(raw))
}

func TestUsage(t *testing.T) {
	env := newTestEnv(t, nil)
	day := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, env.tracker.RecordUsage(context.Background(), tokens.UsageEntry{
		Timestamp: day, Provider: "mistral", Model: "mistral-small-latest", PromptTokens: 40, CompletionTokens: 10,
	}))

	resp, raw := env.do(t, fiber.MethodGet, "/api/usage?day=2026-05-01", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Day       string                 `json:"day"`
			Providers []tokens.ProviderUsage `json:"providers"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.True(t, body.Success)
	assert.Equal(t, "2026-05-01", body.Data.Day)
	require.Len(t, body.Data.Providers, 1)
	assert.EqualValues(t, 40, body.Data.Providers[0].PromptTokens)

	resp, _ = env.do(t, fiber.MethodGet, "/api/usage?day=yesterday", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestContentLibrary(t *testing.T) {
	env := newTestEnv(t, newMemoryContents())

	resp, raw := env.do(t, fiber.MethodPost, "/api/content", map[string]interface{}{
		"kind":     "promo",
		"title":    "Spring",
		"body":     "Save now",
		"provider": "gemini",
		"tags":     []string{"#spring"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data models.SavedContent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	require.NotEqual(t, uuid.Nil, created.Data.ID)
	assert.JSONEq(t, `["#spring"]`, string(created.Data.Tags))

	resp, _ = env.do(t, fiber.MethodGet, "/api/content/"+created.Data.ID.String(), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, raw = env.do(t, fiber.MethodGet, "/api/content?kind=promo", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"total":1`)

	resp, _ = env.do(t, fiber.MethodGet, "/api/content/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodDelete, "/api/content/"+created.Data.ID.String(), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodGet, "/api/content/"+created.Data.ID.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodPost, "/api/content", map[string]string{"kind": "poem"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestContentLibraryDisabled(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, _ := env.do(t, fiber.MethodGet, "/api/content", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
