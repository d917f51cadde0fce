package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Gemini implements the LLM interface using Google's Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed completion backend.
// Returns an error if the API key is missing or the client cannot be built.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key (set GEMINI_API_KEY or provide in config)", ErrInvalidConfig)
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create genai client: %v", ErrInvalidConfig, err)
	}

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// Complete sends the prompt to Gemini and returns the generated text.
func (g *Gemini) Complete(ctx context.Context, prompt string, cfg Config) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrInvalidConfig)
	}

	model := cfg.Model
	if model == "" {
		model = g.model
	}

	genCfg := &genai.GenerateContentConfig{}
	if cfg.Temperature > 0 {
		genCfg.Temperature = genai.Ptr(cfg.Temperature)
	}
	if cfg.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(cfg.MaxTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: model returned empty text", ErrMalformedResponse)
	}

	return text, nil
}
