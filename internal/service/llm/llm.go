package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/chynybekuuludastan/content_gateway/internal/service/llm/tokens"
)

// Logger interface for service logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Provider is a single LLM vendor adapter
type Provider interface {
	// Generate performs one outbound call and returns the generated text
	Generate(ctx context.Context, request *CompletionRequest) (*ProviderResult, error)

	// Name returns the identifier used in PROVIDER_ORDER and in responses
	Name() string
}

// UsageRecorder stores per-provider usage after a successful generation
type UsageRecorder interface {
	RecordUsage(ctx context.Context, entry tokens.UsageEntry) error
}

// Service runs completion requests through the ordered provider chain
type Service struct {
	providers     map[string]Provider
	order         []string
	explicitOrder bool
	limiter       *rate.Limiter
	usage         UsageRecorder
	mutex         sync.RWMutex
	logger        Logger
}

// ServiceOptions contains configuration for the LLM service
type ServiceOptions struct {
	Order     []string
	RateLimit rate.Limit
	RateBurst int
	Usage     UsageRecorder
	Logger    Logger
}

// NewService creates a new LLM service with the specified options
func NewService(opts ServiceOptions) *Service {
	if opts.RateLimit == 0 {
		opts.RateLimit = rate.Inf
	}
	if opts.RateBurst == 0 {
		opts.RateBurst = 1
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}

	return &Service{
		providers:     make(map[string]Provider),
		order:         append([]string(nil), opts.Order...),
		explicitOrder: len(opts.Order) > 0,
		limiter:       rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		usage:         opts.Usage,
		logger:        opts.Logger,
	}
}

// RegisterProvider registers an LLM provider with the service.
// Without an explicit order, providers are tried in registration order.
func (s *Service) RegisterProvider(provider Provider) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	name := provider.Name()
	if _, exists := s.providers[name]; !exists && !s.explicitOrder {
		s.order = append(s.order, name)
	}
	s.providers[name] = provider

	s.logger.Info("Registered LLM provider", "provider", name)
}

// GetProvider returns a registered provider by name
func (s *Service) GetProvider(name string) (Provider, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	provider, exists := s.providers[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProvider, name)
	}
	return provider, nil
}

// Chain returns the providers in the order they will be attempted.
// A registered preferred provider is moved to the front.
func (s *Service) Chain(preferred string) []Provider {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	preferred = strings.ToLower(strings.TrimSpace(preferred))
	chain := make([]Provider, 0, len(s.order))
	if p, ok := s.providers[preferred]; ok {
		chain = append(chain, p)
	}
	for _, name := range s.order {
		if name == preferred {
			continue
		}
		if p, ok := s.providers[name]; ok {
			chain = append(chain, p)
		}
	}
	return chain
}

// ProviderNames lists the effective chain order
func (s *Service) ProviderNames() []string {
	chain := s.Chain("")
	names := make([]string, 0, len(chain))
	for _, p := range chain {
		names = append(names, p.Name())
	}
	return names
}

// Generate sends the request through the provider chain and returns the first success.
// When every provider fails the error wraps ErrAllProvidersFailed.
func (s *Service) Generate(ctx context.Context, request *CompletionRequest, preferred string) (*ProviderResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		s.logger.Error("Rate limit exceeded", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrRateLimitExceeded, err)
	}

	chain := s.Chain(preferred)
	attempts := make([]Attempt[*ProviderResult], 0, len(chain))
	for _, provider := range chain {
		provider := provider
		attempts = append(attempts, Attempt[*ProviderResult]{
			Name: provider.Name(),
			Run: func(ctx context.Context) (*ProviderResult, error) {
				return provider.Generate(ctx, request)
			},
		})
	}

	result, name, err := FirstSuccess(ctx, s.logger, attempts)
	if err != nil {
		return nil, err
	}
	if result.Provider == "" {
		result.Provider = name
	}

	s.recordUsage(ctx, request, result)
	return result, nil
}

func (s *Service) recordUsage(ctx context.Context, request *CompletionRequest, result *ProviderResult) {
	if s.usage == nil {
		return
	}

	promptTokens, completionTokens := tokens.CalculateContextSize(request.System+request.Prompt, result.Text)
	entry := tokens.UsageEntry{
		Timestamp:        time.Now(),
		Provider:         result.Provider,
		Model:            result.Model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
	}
	if err := s.usage.RecordUsage(ctx, entry); err != nil {
		s.logger.Error("Failed to record LLM usage", "error", err, "provider", result.Provider)
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// NopLogger returns a Logger that discards everything
func NopLogger() Logger { return nopLogger{} }
