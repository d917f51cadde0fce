package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultGatewayTimeout bounds each invocation when GatewayConfig.Timeout
// is zero.
const DefaultGatewayTimeout = 60 * time.Second

// GatewayConfig holds connection settings for the model gateway serving the
// raw-schema providers.
type GatewayConfig struct {
	// Endpoint is the base URL of the model gateway
	Endpoint string

	// Timeout bounds each invocation (0 = DefaultGatewayTimeout)
	Timeout time.Duration
}

// Gateway invokes hosted models that speak one of the raw JSON schemas.
// Models are addressed as POST {endpoint}/model/{model}/invoke with a
// provider-specific body.
type Gateway struct {
	endpoint string
	client   *http.Client
}

// NewGateway creates a client for the model gateway.
func NewGateway(cfg GatewayConfig) (*Gateway, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("gateway endpoint cannot be empty")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}

	return &Gateway{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Backend returns an LLM bound to one raw-schema provider. The provider tag
// is resolved here, before any network I/O can happen.
func (g *Gateway) Backend(p Provider) (LLM, error) {
	s, ok := schemaFor(p)
	if !ok {
		return nil, fmt.Errorf("%w: %q has no gateway schema", ErrUnsupportedProvider, p)
	}
	return &gatewayBackend{gateway: g, schema: s}, nil
}

// gatewayBackend is one raw-schema provider behind the shared gateway.
type gatewayBackend struct {
	gateway *Gateway
	schema  schema
}

func (b *gatewayBackend) Complete(ctx context.Context, prompt string, cfg Config) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrInvalidConfig)
	}

	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}

	model := cfg.Model
	if model == "" {
		model = b.schema.defaultModel
	}

	jsonData, err := json.Marshal(b.schema.encode(prompt, cfg))
	if err != nil {
		return "", fmt.Errorf("marshaling provider request: %w", err)
	}

	url := b.gateway.endpoint + "/model/" + model + "/invoke"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.gateway.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: gateway returned status %d for model %s", ErrProviderUnavailable, resp.StatusCode, model)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response body: %v", ErrProviderUnavailable, err)
	}

	return b.schema.decode(body)
}
