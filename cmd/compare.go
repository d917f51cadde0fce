package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kestrel-labs/grounder/internal/config"
	"github.com/kestrel-labs/grounder/internal/llm"
	"github.com/spf13/cobra"
)

var compareProviders string

var compareCmd = &cobra.Command{
	Use:   "compare [question]",
	Short: "Ask the same question to several providers side by side",
	Long: `Ask the same question to several completion providers and print each
answer. Retrieval and prompt assembly happen once; the assembled prompt is
dispatched to every provider concurrently.

Examples:
  grounder compare "What are the benefits of using X?"
  grounder compare "How is billing calculated?" --providers claude,titan`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringVar(&compareProviders, "providers", "", "Comma-separated providers to query (default: all configured)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx := context.Background()

	cfg := config.Load()

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F780FF")).
		Bold(true)

	providerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#50FA7B")).
		Bold(true)

	answerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E9E9F4"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5555"))

	p, err := newPipeline(ctx, cfg, false)
	if err != nil {
		return err
	}

	var providers []llm.Provider
	if compareProviders != "" {
		for _, name := range strings.Split(compareProviders, ",") {
			providers = append(providers, llm.Provider(strings.TrimSpace(name)))
		}
	} else {
		providers = p.Providers()
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Question:"))
	fmt.Println(question)
	fmt.Println()

	results, err := p.AnswerAll(ctx, question, providers)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Println(providerStyle.Render(fmt.Sprintf("── %s ──", r.Provider)))
		if r.Err != nil {
			fmt.Println(errorStyle.Render(fmt.Sprintf("failed: %v", r.Err)))
		} else {
			fmt.Println(answerStyle.Render(strings.TrimSpace(r.Answer.Text)))
		}
		fmt.Println()
	}

	return nil
}
