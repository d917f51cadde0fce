package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kestrel-labs/grounder/internal/config"
	"github.com/kestrel-labs/grounder/internal/httpapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question answering API over HTTP",
	Long: `Serve the question answering pipeline as an HTTP API.

Endpoints:
  GET  /health  - liveness check
  POST /ask     - {"question": "...", "provider": "..."} -> answer

The listen port is taken from the PORT environment variable (default 8080).`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	p, err := newPipeline(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	handler := httpapi.NewHandler(p, cfg.Timeout, logger)
	router := httpapi.NewRouter(handler)

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening",
		zap.String("addr", addr),
		zap.String("index", cfg.IndexEndpoint),
		zap.String("gateway", cfg.GatewayEndpoint))

	return server.ListenAndServe()
}
