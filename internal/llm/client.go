// Package llm provides chat-completion client interfaces and implementations.
// The responder depends only on this narrow contract; provider configuration
// and connection setup live behind the constructors.
package llm

import (
	"context"
	"fmt"
)

// StreamCallback is called for each text fragment during streaming. Returning
// an error aborts the stream.
type StreamCallback func(fragment string, index int) error

// ChatMessage is one message in a completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is a chat-completion request. System carries the system
// instruction separately because providers disagree on where it belongs.
type CompletionRequest struct {
	Model       string
	System      string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
}

// CompletionResponse is the final result of a completion, streamed or not.
type CompletionResponse struct {
	Content    string
	Model      string
	TokensIn   int
	TokensOut  int
	StopReason string
	LatencyMs  int64
}

// Client is the interface for chat-completion providers.
type Client interface {
	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// CompleteStream sends a streaming completion request, invoking callback
	// for each fragment in generation order before requesting the next.
	CompleteStream(ctx context.Context, req *CompletionRequest, callback StreamCallback) (*CompletionResponse, error)

	// Name returns the provider name.
	Name() string
}

// Provider identifies a chat-completion backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAzure     Provider = "azure"
	ProviderAnthropic Provider = "anthropic"
)

// Options configures client construction.
type Options struct {
	APIKey        string
	AzureEndpoint string
}

// NewClient creates a chat-completion client for the given provider.
func NewClient(provider Provider, opts Options) (Client, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIClient(opts.APIKey)
	case ProviderAzure:
		return NewAzureOpenAIClient(opts.APIKey, opts.AzureEndpoint)
	case ProviderAnthropic:
		return NewAnthropicClient(opts.APIKey)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}
