package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/kestrel-labs/grounder/internal/config"
	"github.com/kestrel-labs/grounder/internal/llm"
	"github.com/kestrel-labs/grounder/internal/pipeline"
	"github.com/kestrel-labs/grounder/internal/retrieval"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	askProvider    string
	askPageSize    int
	askMaxTokens   int
	askTemperature float64
	askVerbose     bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question answered from the document index",
	Long: `Ask a natural language question answered strictly from the managed
document index.

This command:
1. Retrieves relevant passages from the index
2. Assembles a grounded prompt from the passages and your question
3. Dispatches the prompt to a hosted text-generation provider

Required environment variables:
  INDEX_ENDPOINT          - Base URL of the index service
  INDEX_ID                - Identifier of the index to query
  MODEL_GATEWAY_ENDPOINT  - Base URL of the model gateway

Examples:
  grounder ask "What are the benefits of using X?"
  grounder ask "How do I rotate credentials?" --provider claude
  grounder ask "Summarize the deployment process" --page-size 10 --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askProvider, "provider", "", "Completion provider (claude, jurassic, titan, openai, gemini)")
	askCmd.Flags().IntVar(&askPageSize, "page-size", 0, "Number of passages to retrieve for context")
	askCmd.Flags().IntVar(&askMaxTokens, "max-tokens", 0, "Cap on generated answer length")
	askCmd.Flags().Float64Var(&askTemperature, "temperature", -1, "Sampling temperature (0.0-1.0)")
	askCmd.Flags().BoolVar(&askVerbose, "verbose", false, "Show detailed progress")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx := context.Background()

	cfg := config.Load()
	if askProvider != "" {
		cfg.Provider = askProvider
	}
	if askPageSize > 0 {
		cfg.PageSize = askPageSize
	}
	if askMaxTokens > 0 {
		cfg.MaxTokens = askMaxTokens
	}
	if askTemperature >= 0 {
		cfg.Temperature = askTemperature
	}

	// Styling
	var (
		headerColor   = lipgloss.Color("#F780FF") // Bright pink
		questionColor = lipgloss.Color("#8BE9FD") // Cyan
		answerColor   = lipgloss.Color("#E9E9F4") // Light purple/white
		contextColor  = lipgloss.Color("#6272A4") // Muted purple
		errorColor    = lipgloss.Color("#FF5555") // Red
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true)

	questionStyle := lipgloss.NewStyle().
		Foreground(questionColor).
		Italic(true)

	answerStyle := lipgloss.NewStyle().
		Foreground(answerColor)

	contextStyle := lipgloss.NewStyle().
		Foreground(contextColor).
		Italic(true)

	errorStyle := lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	// Print question
	fmt.Println()
	fmt.Println(headerStyle.Render("Question:"))
	fmt.Println(questionStyle.Render(question))
	fmt.Println()

	if askVerbose {
		fmt.Println(contextStyle.Render("→ Initializing pipeline..."))
	}

	p, err := newPipeline(ctx, cfg, askVerbose)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	if askVerbose {
		fmt.Println(contextStyle.Render("→ Retrieving passages and generating answer..."))
	}

	answer, err := p.Answer(ctx, question)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	if askVerbose {
		fmt.Println(contextStyle.Render(fmt.Sprintf("→ Grounded on %d passages via %s", answer.Passages, answer.Provider)))
		fmt.Println()
	}

	// Print answer
	fmt.Println(headerStyle.Render("Answer:"))
	fmt.Println()
	fmt.Println(answerStyle.Render(answer.Text))
	fmt.Println()

	return nil
}

// newPipeline wires the retriever, the gateway-backed providers and any
// configured SDK providers into a pipeline.
func newPipeline(ctx context.Context, cfg *config.Config, verbose bool) (*pipeline.Pipeline, error) {
	retriever, err := retrieval.NewRetriever(retrieval.Config{
		Endpoint: cfg.IndexEndpoint,
		IndexID:  cfg.IndexID,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create retriever: %w", err)
	}

	gateway, err := llm.NewGateway(llm.GatewayConfig{
		Endpoint: cfg.GatewayEndpoint,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model gateway: %w", err)
	}

	dispatcher := llm.NewDispatcher()
	for _, p := range []llm.Provider{llm.ProviderClaude, llm.ProviderJurassic, llm.ProviderTitan} {
		backend, err := gateway.Backend(p)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s backend: %w", p, err)
		}
		dispatcher.Register(p, backend)
	}

	// SDK providers are optional; register them only when a key is present.
	if cfg.OpenAIAPIKey != "" {
		openAI, err := llm.NewOpenAI(cfg.OpenAIAPIKey, "")
		if err != nil {
			return nil, fmt.Errorf("failed to create openai backend: %w", err)
		}
		dispatcher.Register(llm.ProviderOpenAI, openAI)
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, "")
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini backend: %w", err)
		}
		dispatcher.Register(llm.ProviderGemini, gemini)
	}

	logger := zap.NewNop()
	if verbose {
		logger, _ = zap.NewDevelopment()
	}

	pipelineCfg := pipeline.Config{
		PageSize: cfg.PageSize,
		Page:     1,
		Provider: llm.Provider(cfg.Provider),
		Generation: llm.Config{
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: float32(cfg.Temperature),
		},
	}

	return pipeline.New(retriever, dispatcher, pipelineCfg, logger)
}
