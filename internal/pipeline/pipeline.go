// Package pipeline orchestrates the question answering flow: retrieval,
// prompt assembly, completion dispatch. The three stages run sequentially
// with no feedback loop; every entity lives for a single request cycle.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kestrel-labs/grounder/internal/llm"
	"github.com/kestrel-labs/grounder/internal/prompt"
	"github.com/kestrel-labs/grounder/internal/retrieval"
	"go.uber.org/zap"
)

// Config holds configuration for the question answering pipeline.
type Config struct {
	// PageSize is the number of passages requested from the index
	PageSize int

	// Page is the result page to request (1-based)
	Page int

	// Provider selects the default completion backend
	Provider llm.Provider

	// Generation holds generation options passed to the provider
	Generation llm.Config
}

// DefaultConfig returns sensible defaults for the pipeline.
func DefaultConfig() Config {
	return Config{
		PageSize:   5,
		Page:       1,
		Provider:   llm.ProviderTitan,
		Generation: llm.DefaultConfig(),
	}
}

// Answer is the result of one question cycle.
type Answer struct {
	// Question is the question that was asked
	Question string `json:"question"`

	// Text is the generated answer
	Text string `json:"text"`

	// Provider identifies the backend that produced the answer
	Provider llm.Provider `json:"provider"`

	// Passages is the number of retrieved passages grounding the answer
	Passages int `json:"passages"`

	// GeneratedAt is when the answer was produced
	GeneratedAt time.Time `json:"generated_at"`
}

// Pipeline runs retrieve, build and complete against configured backends.
type Pipeline struct {
	retriever  *retrieval.Retriever
	dispatcher *llm.Dispatcher
	config     Config
	logger     *zap.Logger
}

// New creates a pipeline from its collaborators.
func New(retriever *retrieval.Retriever, dispatcher *llm.Dispatcher, config Config, logger *zap.Logger) (*Pipeline, error) {
	if retriever == nil {
		return nil, fmt.Errorf("retriever cannot be nil")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if config.PageSize <= 0 {
		config.PageSize = DefaultConfig().PageSize
	}
	if config.Page <= 0 {
		config.Page = DefaultConfig().Page
	}
	if config.Provider == "" {
		config.Provider = DefaultConfig().Provider
	}

	return &Pipeline{
		retriever:  retriever,
		dispatcher: dispatcher,
		config:     config,
		logger:     logger,
	}, nil
}

// Providers returns the provider tags the pipeline can dispatch to.
func (p *Pipeline) Providers() []llm.Provider {
	return p.dispatcher.Providers()
}

// Answer runs the full cycle with the configured default provider.
func (p *Pipeline) Answer(ctx context.Context, question string) (*Answer, error) {
	return p.AnswerWith(ctx, question, p.config.Provider)
}

// AnswerWith runs the full cycle against a specific provider.
func (p *Pipeline) AnswerWith(ctx context.Context, question string, provider llm.Provider) (*Answer, error) {
	passages, promptText, err := p.retrieveAndBuild(ctx, question)
	if err != nil {
		return nil, err
	}

	text, err := p.dispatcher.Complete(ctx, promptText, provider, p.config.Generation)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}
	p.logger.Info("generated answer",
		zap.String("provider", string(provider)),
		zap.Int("chars", len(text)))

	return &Answer{
		Question:    question,
		Text:        text,
		Provider:    provider,
		Passages:    len(passages),
		GeneratedAt: time.Now(),
	}, nil
}

// ProviderAnswer pairs a provider with its result in a fan-out run.
type ProviderAnswer struct {
	Provider llm.Provider
	Answer   *Answer
	Err      error
}

// AnswerAll retrieves once, then fans the assembled prompt out to every
// given provider concurrently. Completion calls share no mutable state, so
// each runs in its own goroutine; one provider failing does not abort the
// others. Results come back in the order providers were given.
func (p *Pipeline) AnswerAll(ctx context.Context, question string, providers []llm.Provider) ([]ProviderAnswer, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}

	passages, promptText, err := p.retrieveAndBuild(ctx, question)
	if err != nil {
		return nil, err
	}

	results := make([]ProviderAnswer, len(providers))
	var wg sync.WaitGroup
	for i, provider := range providers {
		wg.Add(1)
		go func(i int, provider llm.Provider) {
			defer wg.Done()

			text, err := p.dispatcher.Complete(ctx, promptText, provider, p.config.Generation)
			if err != nil {
				results[i] = ProviderAnswer{Provider: provider, Err: err}
				return
			}
			results[i] = ProviderAnswer{
				Provider: provider,
				Answer: &Answer{
					Question:    question,
					Text:        text,
					Provider:    provider,
					Passages:    len(passages),
					GeneratedAt: time.Now(),
				},
			}
		}(i, provider)
	}
	wg.Wait()

	return results, nil
}

// retrieveAndBuild runs stages 1 and 2. An empty retrieval result is
// recoverable: the prompt is built over an empty context block.
func (p *Pipeline) retrieveAndBuild(ctx context.Context, question string) ([]retrieval.Passage, string, error) {
	if question == "" {
		return nil, "", fmt.Errorf("question cannot be empty")
	}

	passages, err := p.retriever.Retrieve(ctx, question, p.config.PageSize, p.config.Page)
	if err != nil {
		if !errors.Is(err, retrieval.ErrEmptyResult) {
			return nil, "", fmt.Errorf("retrieval failed: %w", err)
		}
		p.logger.Warn("no passages retrieved, answering with empty context",
			zap.String("question", question))
		passages = nil
	}
	p.logger.Info("retrieved passages", zap.Int("count", len(passages)))

	promptText := prompt.Build(question, passages)
	p.logger.Debug("assembled prompt", zap.Int("chars", len(promptText)))

	return passages, promptText, nil
}
