package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chynybekuuludastan/content_gateway/internal/notify"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/prompts"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/providers"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	calls int
	last  *llm.CompletionRequest
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Generate(ctx context.Context, request *llm.CompletionRequest) (*llm.ProviderResult, error) {
	p.calls++
	p.last = request
	if p.err != nil {
		return nil, p.err
	}
	return &llm.ProviderResult{Provider: p.name, Model: p.name + "-model", Text: p.text}, nil
}

type stubSender struct {
	sent []notify.Email
	err  error
}

func (s *stubSender) Send(ctx context.Context, email notify.Email) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, email)
	return "em_1", nil
}

func newTestService(sender notify.Sender, chain ...llm.Provider) *Service {
	svc := llm.NewService(llm.ServiceOptions{})
	for _, p := range chain {
		svc.RegisterProvider(p)
	}
	opts := Options{Completer: svc}
	if sender != nil {
		opts.Sender = sender
	}
	return NewService(opts)
}

// unconfiguredChain returns the real adapters with no API keys, pointed at a
// server that counts any request that slips through.
func unconfiguredChain(t *testing.T) ([]llm.Provider, *int32) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	t.Cleanup(server.Close)

	return []llm.Provider{
		providers.NewGeminiProvider(providers.Options{}),
		providers.NewOpenAIProvider(providers.Options{BaseURL: server.URL}),
		providers.NewAnthropicProvider(providers.Options{BaseURL: server.URL}),
		providers.NewMistralProvider(providers.Options{BaseURL: server.URL}),
	}, &hits
}

func TestGeneratePromoWithoutKeysReturnsCannedPromo(t *testing.T) {
	chain, hits := unconfiguredChain(t)
	svc := newTestService(nil, chain...)
	request := prompts.PromoRequest{PromoCode: "SAVE10", Service: "bookkeeping", Urgency: "high"}

	first, err := svc.GeneratePromo(context.Background(), request)
	require.NoError(t, err)
	second, err := svc.GeneratePromo(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, newPromoResult(CannedPromo(request), FallbackProvider), first)
	assert.Equal(t, "fallback", first.Provider)
	assert.Equal(t, "Redeem SAVE10 now", first.CTA)
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestGenerateEmailTemplateWithoutKeysReturnsCannedTemplate(t *testing.T) {
	chain, hits := unconfiguredChain(t)
	svc := newTestService(nil, chain...)
	request := prompts.EmailTemplateRequest{
		Type:    prompts.TemplateWelcome,
		Content: prompts.EmailContent{RecipientName: "Ada", CTALink: "https://example.com/start"},
	}

	result, err := svc.GenerateEmailTemplate(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, CannedEmailTemplate(request), result.Template)
	assert.Equal(t, FallbackProvider, result.Provider)
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestGeneratePromoFallsThroughToNextProvider(t *testing.T) {
	failing := &stubProvider{name: "gemini", err: &llm.HTTPError{Provider: "gemini", StatusCode: 503, Body: "overloaded"}}
	working := &stubProvider{name: "openai", text: "Title: Hello\nbody line 1\nCall-to-Action: Click here\nTags: #a, #b"}
	svc := newTestService(nil, failing, working)

	result, err := svc.GeneratePromo(context.Background(), prompts.PromoRequest{})
	require.NoError(t, err)

	assert.Equal(t, "openai", result.Provider)
	assert.Equal(t, "Hello", result.Title)
	assert.Equal(t, "body line 1", result.Body)
	assert.Equal(t, "Click here", result.CTA)
	assert.Equal(t, []string{"#a", "#b"}, result.RecommendedTags)
	assert.Equal(t, 1, failing.calls)

	assert.InDelta(t, promoTemperature, working.last.Temperature, 1e-6)
	assert.Equal(t, promoMaxTokens, working.last.MaxTokens)
}

func TestGeneratePromoUnexpectedErrorIsReturned(t *testing.T) {
	svc := NewService(Options{Completer: completerFunc(func(context.Context, *llm.CompletionRequest, string) (*llm.ProviderResult, error) {
		return nil, llm.ErrRateLimitExceeded
	})})

	_, err := svc.GeneratePromo(context.Background(), prompts.PromoRequest{})
	assert.ErrorIs(t, err, llm.ErrRateLimitExceeded)
}

type completerFunc func(context.Context, *llm.CompletionRequest, string) (*llm.ProviderResult, error)

func (f completerFunc) Generate(ctx context.Context, r *llm.CompletionRequest, preferred string) (*llm.ProviderResult, error) {
	return f(ctx, r, preferred)
}

func TestGenerateEmailTemplateSanitizesProviderHTML(t *testing.T) {
	var preferred string
	svc := NewService(Options{Completer: completerFunc(func(_ context.Context, r *llm.CompletionRequest, p string) (*llm.ProviderResult, error) {
		preferred = p
		return &llm.ProviderResult{
			Provider: "anthropic",
			Text:     "```html\n<html><body><h1 onclick=\"x()\">Hi</h1><script>alert(1)</script></body></html>\n```",
		}, nil
	})})

	result, err := svc.GenerateEmailTemplate(context.Background(), prompts.EmailTemplateRequest{
		Type:     prompts.TemplateNewsletter,
		Provider: "anthropic",
	})
	require.NoError(t, err)

	assert.Equal(t, "anthropic", preferred)
	assert.Equal(t, "anthropic", result.Provider)
	assert.Equal(t, "<!DOCTYPE html>\n<html><head></head><body><h1>Hi</h1></body></html>", result.Template)
}

func TestGenerateEmailTemplateRejectsUnknownType(t *testing.T) {
	svc := NewService(Options{Completer: completerFunc(func(context.Context, *llm.CompletionRequest, string) (*llm.ProviderResult, error) {
		t.Fatal("provider must not be called")
		return nil, nil
	})})

	_, err := svc.GenerateEmailTemplate(context.Background(), prompts.EmailTemplateRequest{Type: "birthday"})

	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestGenerateText(t *testing.T) {
	provider := &stubProvider{name: "mistral", text: "Generated"}
	svc := newTestService(nil, provider)

	temperature := float32(1.7)
	maxTokens := 300
	result, err := svc.GenerateText(context.Background(), prompts.TextRequest{
		Prompt:      "Say hi",
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	require.NoError(t, err)

	assert.Equal(t, &TextResult{Text: "Generated", Prompt: "Say hi", Provider: "mistral"}, result)
	assert.InDelta(t, 1.0, provider.last.Temperature, 1e-6)
	assert.Equal(t, 300, provider.last.MaxTokens)
}

func TestGenerateTextRequiresPrompt(t *testing.T) {
	provider := &stubProvider{name: "openai", text: "x"}
	svc := newTestService(nil, provider)

	for _, prompt := range []string{"", "   "} {
		_, err := svc.GenerateText(context.Background(), prompts.TextRequest{Prompt: prompt})
		var inputErr *InputError
		require.ErrorAs(t, err, &inputErr)
		assert.Equal(t, "prompt is required", inputErr.Message)
	}
	assert.Zero(t, provider.calls)
}

func TestGenerateTextTotalFailure(t *testing.T) {
	svc := newTestService(nil, &stubProvider{name: "openai", err: errors.New("boom")})

	_, err := svc.GenerateText(context.Background(), prompts.TextRequest{Prompt: "hi"})
	assert.ErrorIs(t, err, llm.ErrAllProvidersFailed)
}

func TestGenerateWithAgent(t *testing.T) {
	provider := &stubProvider{name: "gemini", text: "Hallo Welt"}
	svc := newTestService(nil, provider)

	result, err := svc.GenerateWithAgent(context.Background(), AgentInput{
		Content:        "Hello world",
		AgentType:      "translate",
		TargetLanguage: "German",
	})
	require.NoError(t, err)

	assert.Equal(t, "Hallo Welt", result.Text)
	assert.Equal(t, "gemini", result.Provider)
	assert.Equal(t, "gemini-model", result.Model)
	assert.Equal(t, "translate", result.Metadata["agentType"])
	assert.NotContains(t, result.Metadata, "emailSent")
	assert.InDelta(t, 0.3, provider.last.Temperature, 1e-6)
	assert.Contains(t, provider.last.Prompt, "Translate the content to German.")
}

func TestGenerateWithAgentInputErrors(t *testing.T) {
	provider := &stubProvider{name: "gemini", text: "x"}
	svc := newTestService(nil, provider)

	inputs := []AgentInput{
		{AgentType: "translate"},
		{Content: "x"},
		{Content: "x", AgentType: "poetry"},
		{Content: "x", AgentType: "summarize", Parameters: json.RawMessage(`{"maxWords":"many"}`)},
	}
	for _, input := range inputs {
		_, err := svc.GenerateWithAgent(context.Background(), input)
		var inputErr *InputError
		assert.ErrorAs(t, err, &inputErr, "%+v", input)
	}
	assert.Zero(t, provider.calls)
}

func TestGenerateWithAgentSendsEmail(t *testing.T) {
	sender := &stubSender{}
	svc := newTestService(sender, &stubProvider{name: "openai", text: "Subject: Big news\n\nWe launched."})

	result, err := svc.GenerateWithAgent(context.Background(), AgentInput{
		Content:    "We launched",
		AgentType:  "email",
		Parameters: json.RawMessage(`{"sendEmail":true,"to":"lead@example.com"}`),
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"lead@example.com"}, sender.sent[0].To)
	assert.Equal(t, "Big news", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].HTML, "<p>We launched.</p>")
	assert.Equal(t, true, result.Metadata["emailSent"])
	assert.Equal(t, "em_1", result.Metadata["emailId"])
}

func TestGenerateWithAgentEmailFailureDoesNotFail(t *testing.T) {
	sender := &stubSender{err: errors.New("smtp down")}
	svc := newTestService(sender, &stubProvider{name: "openai", text: "Short summary"})

	result, err := svc.GenerateWithAgent(context.Background(), AgentInput{
		Content:    "Long text",
		AgentType:  "summarize",
		Parameters: json.RawMessage(`{"sendEmail":true,"to":"a@b.co","subject":"Summary"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "Short summary", result.Text)
	assert.Equal(t, false, result.Metadata["emailSent"])
	assert.Equal(t, "smtp down", result.Metadata["emailError"])
}

func TestSendEmail(t *testing.T) {
	sender := &stubSender{}
	svc := newTestService(sender)

	id, err := svc.SendEmail(context.Background(), notify.Email{To: []string{"a@b.co"}, Subject: "Hi", Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "em_1", id)

	_, err = svc.SendEmail(context.Background(), notify.Email{Subject: "Hi"})
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)

	_, err = newTestService(nil).SendEmail(context.Background(), notify.Email{To: []string{"a@b.co"}, Subject: "Hi"})
	assert.ErrorIs(t, err, notify.ErrNotConfigured)
}
