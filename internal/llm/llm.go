// Package llm provides provider-agnostic completion dispatch. It defines a
// uniform interface over hosted text-generation providers: three raw
// JSON-over-HTTP model families served through a shared gateway, SDK-backed
// OpenAI and Gemini implementations, and a deterministic mock for testing.
// Each call is a single attempt; failures surface immediately with no retry
// and no fallback provider.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrProviderUnavailable indicates a transport or authentication failure
	// while reaching the provider.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMalformedResponse indicates the provider responded but the expected
	// extraction path was absent from the envelope.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrUnsupportedProvider indicates the provider tag matches no known
	// schema or registered backend. No network call is made.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrInvalidConfig indicates a misconfigured provider (missing key,
	// empty prompt).
	ErrInvalidConfig = errors.New("invalid provider configuration")
)

// Provider identifies a hosted model family and, with it, the request and
// response schema used to talk to it.
type Provider string

const (
	ProviderClaude   Provider = "claude"
	ProviderJurassic Provider = "jurassic"
	ProviderTitan    Provider = "titan"
	ProviderOpenAI   Provider = "openai"
	ProviderGemini   Provider = "gemini"
)

// Config holds generation options common to all providers.
type Config struct {
	// Model overrides the provider's default model identifier
	Model string

	// MaxTokens caps generation length (0 = use the default cap)
	MaxTokens int

	// Temperature controls sampling randomness, accepted range 0.0-1.0
	Temperature float32
}

// DefaultConfig returns sensible defaults for grounded question answering.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.7,
	}
}

// LLM is the interface implemented by every completion backend.
// Implementations must be stateless and safe for concurrent use.
type LLM interface {
	// Complete sends the prompt to the provider and returns the generated
	// text, normalized to a plain string regardless of envelope shape.
	Complete(ctx context.Context, prompt string, cfg Config) (string, error)
}
