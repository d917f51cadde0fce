package llm

import (
	"context"
)

// Mock is a deterministic LLM implementation for testing.
// It returns a fixed response and records how it was called.
type Mock struct {
	// Response is the fixed text returned by Complete.
	Response string

	// Err, if set, is returned by Complete instead of a response.
	Err error

	// LastPrompt stores the most recent prompt passed to Complete.
	LastPrompt string

	// LastConfig stores the most recent config passed to Complete.
	LastConfig Config

	// Calls counts invocations of Complete.
	Calls int
}

// NewMock creates a mock backend with the given fixed response.
func NewMock(response string) *Mock {
	return &Mock{Response: response}
}

// NewMockWithError creates a mock backend that always returns an error.
func NewMockWithError(err error) *Mock {
	return &Mock{Err: err}
}

// Complete returns the configured response or error.
func (m *Mock) Complete(ctx context.Context, prompt string, cfg Config) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	m.LastConfig = cfg

	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
