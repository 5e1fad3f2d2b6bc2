package providers

import (
	"net/http"
	"time"

	"github.com/chynybekuuludastan/content_gateway/internal/config"
	"github.com/chynybekuuludastan/content_gateway/internal/service/llm"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 1024
)

// Options configures a provider adapter
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     llm.Logger
}

func (o *Options) setDefaults(model, baseURL string) {
	if o.Model == "" {
		o.Model = model
	}
	if o.BaseURL == "" {
		o.BaseURL = baseURL
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if o.Logger == nil {
		o.Logger = llm.NopLogger()
	}
}

// clampTokens applies the default budget and the provider ceiling
func clampTokens(requested, ceiling int) int {
	if requested <= 0 {
		requested = defaultMaxTokens
	}
	if requested > ceiling {
		return ceiling
	}
	return requested
}

// NewFromConfig builds every known adapter from configuration.
// Adapters without a key are still returned so the chain can log and skip them.
func NewFromConfig(cfg *config.Config, logger llm.Logger) []llm.Provider {
	client := &http.Client{Timeout: cfg.ProviderTimeout}
	options := func(p config.ProviderConfig) Options {
		return Options{
			APIKey:     p.APIKey,
			Model:      p.Model,
			BaseURL:    p.BaseURL,
			HTTPClient: client,
			Logger:     logger,
		}
	}

	return []llm.Provider{
		NewGeminiProvider(options(cfg.Providers.Gemini)),
		NewOpenAIProvider(options(cfg.Providers.OpenAI)),
		NewAnthropicProvider(options(cfg.Providers.Anthropic)),
		NewMistralProvider(options(cfg.Providers.Mistral)),
	}
}
