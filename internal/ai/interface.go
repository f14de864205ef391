package ai

import (
	"context"
	"fmt"
	"strings"
)

// Provider defines the contract for interacting with AI completion backends.
// This interface allows for swapping different providers (OpenAI, Gemini, etc.)
// without touching callers; prompt content and response interpretation stay
// with the caller.
type Provider interface {
	// Complete sends a single completion request and returns the model's
	// raw text response.
	Complete(ctx context.Context, req Request) (string, error)

	// Name identifies the backend in logs.
	Name() string

	// Close releases any client resources.
	Close() error
}

// New selects a provider implementation by name. Supported names are
// "openai" (default) and "gemini".
func New(ctx context.Context, provider, apiKey, defaultModel string) (Provider, error) {
	switch strings.ToLower(provider) {
	case "", "openai":
		return NewOpenAIProvider(apiKey, defaultModel)
	case "gemini":
		return NewGeminiProvider(ctx, apiKey, defaultModel)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", provider)
	}
}
