package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAI implements the LLM interface using OpenAI's chat completions API.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI creates an OpenAI-backed completion backend.
// Returns an error if the API key is missing.
func NewOpenAI(apiKey, model string) (*OpenAI, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key (set OPENAI_API_KEY or provide in config)", ErrInvalidConfig)
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &OpenAI{
		client: client,
		model:  model,
	}, nil
}

// Complete sends the prompt to OpenAI and returns the generated text.
func (o *OpenAI) Complete(ctx context.Context, prompt string, cfg Config) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrInvalidConfig)
	}

	model := cfg.Model
	if model == "" {
		model = o.model
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}

	if cfg.Temperature > 0 {
		params.Temperature = openai.Float(float64(cfg.Temperature))
	}
	if cfg.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(cfg.MaxTokens))
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrMalformedResponse)
	}

	return completion.Choices[0].Message.Content, nil
}
