package llm

import (
	"context"
	"fmt"
	"sort"
)

// Dispatcher routes completion requests to the backend registered for a
// provider tag. Registration happens at setup time; after that the
// dispatcher is read-only and safe for concurrent use.
type Dispatcher struct {
	backends map[Provider]LLM
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{backends: make(map[Provider]LLM)}
}

// Register binds a backend to a provider tag, replacing any existing
// binding.
func (d *Dispatcher) Register(p Provider, backend LLM) {
	d.backends[p] = backend
}

// Providers returns the registered provider tags in sorted order.
func (d *Dispatcher) Providers() []Provider {
	providers := make([]Provider, 0, len(d.backends))
	for p := range d.backends {
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i] < providers[j] })
	return providers
}

// Complete dispatches the prompt to the backend registered for the
// provider. Unknown providers fail before any network I/O.
func (d *Dispatcher) Complete(ctx context.Context, prompt string, p Provider, cfg Config) (string, error) {
	backend, ok := d.backends[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, p)
	}
	return backend.Complete(ctx, prompt, cfg)
}
