package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultProviderOrder is the fallback order used when PROVIDER_ORDER is unset
const DefaultProviderOrder = "gemini,openai,anthropic,mistral"

// Config holds application configuration
type Config struct {
	// Server
	Port         string
	Environment  string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Storage (both optional)
	PostgresURI string
	RedisURI    string

	// Providers
	Providers       ProvidersConfig
	ProviderOrder   []string
	ProviderTimeout time.Duration
	RateLimit       float64
	RateBurst       int

	// Email delivery
	ResendAPIKey string
	EmailFrom    string
	SendEmailURL string
}

// ProviderConfig holds the credentials and endpoint of a single LLM vendor
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// ProvidersConfig groups the per-vendor settings
type ProvidersConfig struct {
	Gemini    ProviderConfig
	OpenAI    ProviderConfig
	Anthropic ProviderConfig
	Mistral   ProviderConfig
}

// NewConfig creates a new configuration from environment variables
func NewConfig() *Config {
	readTimeoutSec, _ := strconv.Atoi(getEnv("READ_TIMEOUT", "10"))
	writeTimeoutSec, _ := strconv.Atoi(getEnv("WRITE_TIMEOUT", "120"))
	providerTimeoutSec, _ := strconv.Atoi(getEnv("PROVIDER_TIMEOUT", "60"))
	rateLimit, _ := strconv.ParseFloat(getEnv("LLM_RATE_LIMIT", "10"), 64)
	rateBurst, _ := strconv.Atoi(getEnv("LLM_RATE_BURST", "5"))

	return &Config{
		// Server
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		ReadTimeout:  time.Duration(readTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(writeTimeoutSec) * time.Second,

		// Storage
		PostgresURI: getEnv("POSTGRES_URI", ""),
		RedisURI:    getEnv("REDIS_URI", ""),

		// Providers
		Providers: ProvidersConfig{
			Gemini: ProviderConfig{
				APIKey: getEnv("GEMINI_API_KEY", ""),
				Model:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			},
			OpenAI: ProviderConfig{
				APIKey:  getEnv("OPENAI_API_KEY", ""),
				Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
				BaseURL: getEnv("OPENAI_BASE_URL", ""),
			},
			Anthropic: ProviderConfig{
				APIKey:  getEnv("ANTHROPIC_API_KEY", ""),
				Model:   getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
				BaseURL: getEnv("ANTHROPIC_BASE_URL", ""),
			},
			Mistral: ProviderConfig{
				APIKey:  getEnv("MISTRAL_API_KEY", ""),
				Model:   getEnv("MISTRAL_MODEL", "mistral-small-latest"),
				BaseURL: getEnv("MISTRAL_BASE_URL", ""),
			},
		},
		ProviderOrder:   ParseProviderOrder(getEnv("PROVIDER_ORDER", DefaultProviderOrder)),
		ProviderTimeout: time.Duration(providerTimeoutSec) * time.Second,
		RateLimit:       rateLimit,
		RateBurst:       rateBurst,

		// Email delivery
		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "Marketing <noreply@example.com>"),
		SendEmailURL: getEnv("SEND_EMAIL_URL", ""),
	}
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// ParseProviderOrder splits a comma separated provider list, dropping blanks and duplicates
func ParseProviderOrder(raw string) []string {
	seen := make(map[string]bool)
	var order []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		order = append(order, name)
	}
	return order
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
