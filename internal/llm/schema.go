package llm

import (
	"encoding/json"
	"fmt"
)

// The raw model families differ in the field carrying the prompt, the
// fields carrying generation limits, and the path to the generated text in
// the response envelope. Each family is a tagged variant holding its own
// encoder/decoder pair; dispatch matches on the provider tag and never
// probes response shapes.
type schema struct {
	defaultModel string
	encode       func(prompt string, cfg Config) any
	decode       func(body []byte) (string, error)
}

func schemaFor(p Provider) (schema, bool) {
	switch p {
	case ProviderClaude:
		return claudeSchema, true
	case ProviderJurassic:
		return jurassicSchema, true
	case ProviderTitan:
		return titanSchema, true
	default:
		return schema{}, false
	}
}

// Claude-style: prompt in "prompt" with Human/Assistant turn framing,
// limits in "max_tokens_to_sample"; text in the top-level "completion"
// string.

type claudeRequest struct {
	Prompt            string  `json:"prompt"`
	MaxTokensToSample int     `json:"max_tokens_to_sample"`
	Temperature       float32 `json:"temperature"`
}

type claudeResponse struct {
	Completion *string `json:"completion"`
}

var claudeSchema = schema{
	defaultModel: "anthropic.claude-v2",
	encode: func(prompt string, cfg Config) any {
		return claudeRequest{
			// This schema requires conversational turn framing around the
			// raw prompt text.
			Prompt:            "\n\nHuman: " + prompt + "\n\nAssistant:",
			MaxTokensToSample: cfg.MaxTokens,
			Temperature:       cfg.Temperature,
		}
	},
	decode: func(body []byte) (string, error) {
		var resp claudeResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if resp.Completion == nil {
			return "", fmt.Errorf("%w: missing completion field", ErrMalformedResponse)
		}
		return *resp.Completion, nil
	},
}

// Jurassic-style: prompt in "prompt", limits in "maxTokens"; text in
// completions[0].data.text.

type jurassicRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"maxTokens"`
	Temperature float32 `json:"temperature"`
}

type jurassicResponse struct {
	Completions []struct {
		Data *struct {
			Text *string `json:"text"`
		} `json:"data"`
	} `json:"completions"`
}

var jurassicSchema = schema{
	defaultModel: "ai21.j2-ultra-v1",
	encode: func(prompt string, cfg Config) any {
		return jurassicRequest{
			Prompt:      prompt,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}
	},
	decode: func(body []byte) (string, error) {
		var resp jurassicResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if len(resp.Completions) == 0 || resp.Completions[0].Data == nil || resp.Completions[0].Data.Text == nil {
			return "", fmt.Errorf("%w: missing completions[0].data.text field", ErrMalformedResponse)
		}
		return *resp.Completions[0].Data.Text, nil
	},
}

// Titan-style: prompt in "inputText", limits nested under
// "textGenerationConfig"; text in results[0].outputText.

type titanRequest struct {
	InputText            string                `json:"inputText"`
	TextGenerationConfig titanGenerationConfig `json:"textGenerationConfig"`
}

type titanGenerationConfig struct {
	MaxTokenCount int     `json:"maxTokenCount"`
	Temperature   float32 `json:"temperature"`
}

type titanResponse struct {
	Results []struct {
		OutputText *string `json:"outputText"`
	} `json:"results"`
}

var titanSchema = schema{
	defaultModel: "amazon.titan-text-express-v1",
	encode: func(prompt string, cfg Config) any {
		return titanRequest{
			InputText: prompt,
			TextGenerationConfig: titanGenerationConfig{
				MaxTokenCount: cfg.MaxTokens,
				Temperature:   cfg.Temperature,
			},
		}
	},
	decode: func(body []byte) (string, error) {
		var resp titanResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if len(resp.Results) == 0 || resp.Results[0].OutputText == nil {
			return "", fmt.Errorf("%w: missing results[0].outputText field", ErrMalformedResponse)
		}
		return *resp.Results[0].OutputText, nil
	},
}
