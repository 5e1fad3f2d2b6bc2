package tokens

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-redis/redis/v8"
)

// Models maps model names to pricing information
var Models = map[string]ModelInfo{
	"gpt-4o-mini": {
		TokensPerPromptDollar: 1000000.0 / 0.15, // $0.15 per 1M prompt tokens
		TokensPerOutputDollar: 1000000.0 / 0.60, // $0.60 per 1M completion tokens
		Name:                  "gpt-4o-mini",
		Provider:              "openai",
	},
	"gemini-1.5-flash": {
		TokensPerPromptDollar: 1000000.0 / 0.075,
		TokensPerOutputDollar: 1000000.0 / 0.30,
		Name:                  "gemini-1.5-flash",
		Provider:              "gemini",
	},
	"claude-3-5-haiku-latest": {
		TokensPerPromptDollar: 1000000.0 / 0.80,
		TokensPerOutputDollar: 1000000.0 / 4.00,
		Name:                  "claude-3-5-haiku-latest",
		Provider:              "anthropic",
	},
	"mistral-small-latest": {
		TokensPerPromptDollar: 1000000.0 / 0.20,
		TokensPerOutputDollar: 1000000.0 / 0.60,
		Name:                  "mistral-small-latest",
		Provider:              "mistral",
	},
}

// ModelInfo contains pricing information for a model
type ModelInfo struct {
	TokensPerPromptDollar float64 // Tokens per dollar for input
	TokensPerOutputDollar float64 // Tokens per dollar for output
	Name                  string  // Model name
	Provider              string  // Provider name
}

// UsageEntry represents a token usage entry
type UsageEntry struct {
	Timestamp        time.Time
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// ProviderUsage is the per-day total for one provider
type ProviderUsage struct {
	Provider         string  `json:"provider"`
	Requests         int64   `json:"requests"`
	PromptTokens     int64   `json:"prompt_tokens"`
	CompletionTokens int64   `json:"completion_tokens"`
	EstimatedCost    float64 `json:"estimated_cost"`
}

const (
	defaultKeyPrefix = "llm_usage:"
	defaultRetention = 30 * 24 * time.Hour
	dayLayout        = "2006-01-02"
)

// Tracker keeps daily usage counters per provider in Redis
type Tracker struct {
	redisClient *redis.Client
	keyPrefix   string
	retention   time.Duration
}

// NewTracker creates a new usage tracker
func NewTracker(client *redis.Client) *Tracker {
	return &Tracker{
		redisClient: client,
		keyPrefix:   defaultKeyPrefix,
		retention:   defaultRetention,
	}
}

// TokensToCost converts tokens to cost for a given model.
// Unknown models are priced at zero.
func TokensToCost(model string, promptTokens, completionTokens int) float64 {
	modelInfo, ok := Models[model]
	if !ok {
		return 0
	}
	return float64(promptTokens)/modelInfo.TokensPerPromptDollar +
		float64(completionTokens)/modelInfo.TokensPerOutputDollar
}

func (t *Tracker) providersKey(day string) string {
	return t.keyPrefix + day + ":providers"
}

func (t *Tracker) usageKey(day, provider string) string {
	return t.keyPrefix + day + ":" + provider
}

// RecordUsage adds one request to the provider's counters for the entry's day
func (t *Tracker) RecordUsage(ctx context.Context, entry UsageEntry) error {
	if t.redisClient == nil {
		return nil
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	day := entry.Timestamp.UTC().Format(dayLayout)
	key := t.usageKey(day, entry.Provider)
	providers := t.providersKey(day)
	cost := TokensToCost(entry.Model, entry.PromptTokens, entry.CompletionTokens)

	_, err := t.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, providers, entry.Provider)
		pipe.HIncrBy(ctx, key, "requests", 1)
		pipe.HIncrBy(ctx, key, "prompt_tokens", int64(entry.PromptTokens))
		pipe.HIncrBy(ctx, key, "completion_tokens", int64(entry.CompletionTokens))
		pipe.HIncrByFloat(ctx, key, "cost", cost)
		pipe.Expire(ctx, key, t.retention)
		pipe.Expire(ctx, providers, t.retention)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}
	return nil
}

// DailyUsage returns the counters of every provider used on the given day, sorted by name
func (t *Tracker) DailyUsage(ctx context.Context, day time.Time) ([]ProviderUsage, error) {
	if t.redisClient == nil {
		return []ProviderUsage{}, nil
	}

	dayKey := day.UTC().Format(dayLayout)
	names, err := t.redisClient.SMembers(ctx, t.providersKey(dayKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	sort.Strings(names)

	usage := make([]ProviderUsage, 0, len(names))
	for _, name := range names {
		fields, err := t.redisClient.HGetAll(ctx, t.usageKey(dayKey, name)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read usage for %s: %w", name, err)
		}
		entry := ProviderUsage{Provider: name}
		entry.Requests, _ = strconv.ParseInt(fields["requests"], 10, 64)
		entry.PromptTokens, _ = strconv.ParseInt(fields["prompt_tokens"], 10, 64)
		entry.CompletionTokens, _ = strconv.ParseInt(fields["completion_tokens"], 10, 64)
		entry.EstimatedCost, _ = strconv.ParseFloat(fields["cost"], 64)
		usage = append(usage, entry)
	}

	return usage, nil
}

// EstimateTokens estimates the number of tokens in a string
// This is a very rough approximation; different models tokenize differently
func EstimateTokens(text string) int {
	// Roughly 4 characters per token for English text
	return utf8.RuneCountInString(text) / 4
}

// CalculateContextSize calculates estimated token size for request/response
func CalculateContextSize(prompt, completion string) (int, int) {
	return EstimateTokens(prompt), EstimateTokens(completion)
}
