package providers

const (
	mistralBaseURL      = "https://api.mistral.ai/v1"
	mistralDefaultModel = "mistral-small-latest"
	mistralMaxTokens    = 4096
)

// MistralProvider implements the Provider interface for Mistral's chat completions API,
// which follows the OpenAI wire format.
type MistralProvider struct {
	chatCompletionsClient
}

// NewMistralProvider creates a new Mistral provider
func NewMistralProvider(opts Options) *MistralProvider {
	opts.setDefaults(mistralDefaultModel, mistralBaseURL)
	return &MistralProvider{chatCompletionsClient{
		name:       "mistral",
		keyEnv:     "MISTRAL_API_KEY",
		apiKey:     opts.APIKey,
		model:      opts.Model,
		baseURL:    opts.BaseURL,
		maxTokens:  mistralMaxTokens,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}}
}
