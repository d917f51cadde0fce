package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSchemaDecode_EquivalentEnvelopes(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		envelope string
	}{
		{"titan", ProviderTitan, `{"results":[{"outputText":"X"}]}`},
		{"jurassic", ProviderJurassic, `{"completions":[{"data":{"text":"X"}}]}`},
		{"claude", ProviderClaude, `{"completion":"X"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := schemaFor(tt.provider)
			if !ok {
				t.Fatalf("no schema for provider %q", tt.provider)
			}

			got, err := s.decode([]byte(tt.envelope))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != "X" {
				t.Errorf("expected %q, got %q", "X", got)
			}
		})
	}
}

func TestSchemaDecode_MissingExtractionPath(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		envelope string
	}{
		{"titan empty results", ProviderTitan, `{"results":[]}`},
		{"titan missing outputText", ProviderTitan, `{"results":[{"tokenCount":7}]}`},
		{"jurassic empty completions", ProviderJurassic, `{"completions":[]}`},
		{"jurassic missing data", ProviderJurassic, `{"completions":[{"finishReason":"stop"}]}`},
		{"jurassic missing text", ProviderJurassic, `{"completions":[{"data":{}}]}`},
		{"claude missing completion", ProviderClaude, `{"stop_reason":"max_tokens"}`},
		{"claude invalid json", ProviderClaude, `{"completion":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := schemaFor(tt.provider)

			_, err := s.decode([]byte(tt.envelope))
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestSchemaEncode_FieldNames(t *testing.T) {
	cfg := Config{MaxTokens: 256, Temperature: 0.5}

	encode := func(t *testing.T, p Provider) map[string]interface{} {
		t.Helper()
		s, ok := schemaFor(p)
		if !ok {
			t.Fatalf("no schema for provider %q", p)
		}
		data, err := json.Marshal(s.encode("the prompt", cfg))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		var fields map[string]interface{}
		if err := json.Unmarshal(data, &fields); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		return fields
	}

	t.Run("claude", func(t *testing.T) {
		fields := encode(t, ProviderClaude)
		prompt, ok := fields["prompt"].(string)
		if !ok {
			t.Fatal("missing prompt field")
		}
		if !strings.Contains(prompt, "Human: the prompt") || !strings.HasSuffix(prompt, "Assistant:") {
			t.Errorf("missing turn framing: %q", prompt)
		}
		if fields["max_tokens_to_sample"] != float64(256) {
			t.Errorf("unexpected max_tokens_to_sample: %v", fields["max_tokens_to_sample"])
		}
		if fields["temperature"] != 0.5 {
			t.Errorf("unexpected temperature: %v", fields["temperature"])
		}
	})

	t.Run("jurassic", func(t *testing.T) {
		fields := encode(t, ProviderJurassic)
		if fields["prompt"] != "the prompt" {
			t.Errorf("unexpected prompt: %v", fields["prompt"])
		}
		if fields["maxTokens"] != float64(256) {
			t.Errorf("unexpected maxTokens: %v", fields["maxTokens"])
		}
	})

	t.Run("titan", func(t *testing.T) {
		fields := encode(t, ProviderTitan)
		if fields["inputText"] != "the prompt" {
			t.Errorf("unexpected inputText: %v", fields["inputText"])
		}
		genCfg, ok := fields["textGenerationConfig"].(map[string]interface{})
		if !ok {
			t.Fatal("missing textGenerationConfig field")
		}
		if genCfg["maxTokenCount"] != float64(256) {
			t.Errorf("unexpected maxTokenCount: %v", genCfg["maxTokenCount"])
		}
		if genCfg["temperature"] != 0.5 {
			t.Errorf("unexpected temperature: %v", genCfg["temperature"])
		}
	})
}

func TestSchemaFor_UnknownProvider(t *testing.T) {
	if _, ok := schemaFor(Provider("unknown")); ok {
		t.Error("expected no schema for unknown provider")
	}
	// SDK-backed providers have no raw gateway schema either.
	if _, ok := schemaFor(ProviderOpenAI); ok {
		t.Error("expected no gateway schema for openai")
	}
}
