// Package config provides environment configuration for the chatbot server.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Storage
	DBPath      string
	DatabaseURL string

	// LLM settings
	Provider            string
	ChatModel           string
	EmbeddingModel      string
	OpenAIAPIKey        string
	AzureOpenAIKey      string
	AzureOpenAIEndpoint string
	AnthropicAPIKey     string
	LLMTimeout          time.Duration

	// Conversation settings
	RetrievalTopK int
	MaxHistory    int
	MaxTurns      int

	// Admin listings
	AdminSecret string

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),

		// Storage
		DBPath:      getEnv("DB_PATH", "data/chatbot.db"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		// LLM
		Provider:            getEnv("LLM_PROVIDER", "azure"),
		ChatModel:           getEnv("CHAT_MODEL", ""),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", ""),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		AzureOpenAIKey:      getEnv("AZURE_OPENAI_API_KEY", ""),
		AzureOpenAIEndpoint: getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AnthropicAPIKey:     getEnv("ANTHROPIC_API_KEY", ""),
		LLMTimeout:          getDurationEnv("LLM_TIMEOUT", 60*time.Second),

		// Conversation
		RetrievalTopK: getIntEnv("RETRIEVAL_TOP_K", 3),
		MaxHistory:    getIntEnv("MAX_HISTORY", 10),
		MaxTurns:      getIntEnv("MAX_TURNS", 2),

		// Admin
		AdminSecret: getEnv("ADMIN_SECRET", ""),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
