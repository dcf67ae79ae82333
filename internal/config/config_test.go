package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Fatalf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DBPath != "data/chatbot.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Provider != "azure" {
		t.Fatalf("Provider = %q, want azure", cfg.Provider)
	}
	if cfg.RetrievalTopK != 3 || cfg.MaxHistory != 10 || cfg.MaxTurns != 2 {
		t.Fatalf("conversation defaults = %d/%d/%d", cfg.RetrievalTopK, cfg.MaxHistory, cfg.MaxTurns)
	}
	if cfg.LLMTimeout != 60*time.Second {
		t.Fatalf("LLMTimeout = %v", cfg.LLMTimeout)
	}
	if cfg.RateLimitRequests != 60 || cfg.RateLimitWindow != time.Minute {
		t.Fatalf("rate limit defaults = %d per %v", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	if cfg.TracingEnabled {
		t.Fatal("tracing enabled by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("MAX_HISTORY", "5")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("TRACING_ENABLED", "true")

	cfg := Load()

	if cfg.ServerPort != "9999" {
		t.Fatalf("ServerPort = %q, want 9999", cfg.ServerPort)
	}
	if cfg.Provider != "anthropic" {
		t.Fatalf("Provider = %q", cfg.Provider)
	}
	if cfg.MaxHistory != 5 {
		t.Fatalf("MaxHistory = %d, want 5", cfg.MaxHistory)
	}
	if cfg.LLMTimeout != 15*time.Second {
		t.Fatalf("LLMTimeout = %v, want 15s", cfg.LLMTimeout)
	}
	if !cfg.TracingEnabled {
		t.Fatal("TracingEnabled = false, want true")
	}
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("MAX_HISTORY", "many")
	t.Setenv("LLM_TIMEOUT", "soon")

	cfg := Load()
	if cfg.MaxHistory != 10 {
		t.Fatalf("MaxHistory = %d, want default 10", cfg.MaxHistory)
	}
	if cfg.LLMTimeout != 60*time.Second {
		t.Fatalf("LLMTimeout = %v, want default 60s", cfg.LLMTimeout)
	}
}
