package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grounder",
	Short: "Grounder - document Q&A over a managed search index",
	Long: `Grounder answers natural-language questions strictly from passages
retrieved out of an externally managed document index.

It retrieves relevant passages, assembles a grounded prompt, and dispatches
it to one of several hosted text-generation providers.`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
