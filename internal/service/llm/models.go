package llm

// CompletionRequest is the provider-agnostic input of one generation call
type CompletionRequest struct {
	Prompt      string  `json:"prompt"`               // Rendered user prompt
	System      string  `json:"system,omitempty"`     // Optional system instruction
	Temperature float32 `json:"temperature"`          // 0.0 - 1.0
	MaxTokens   int     `json:"max_tokens,omitempty"` // 0 means provider default
}

// ProviderResult is the raw text returned by a provider, tagged with its origin
type ProviderResult struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Text     string `json:"text"`
}
