package main

import (
	"context"
	"fmt"

	"github.com/clipcmp/clipcmp/internal/embeddings"
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the embeddings endpoint is reachable",
	Long: `Send a tiny embedding request to verify the endpoint is up and the
model is loaded.

Examples:
  clipcmp ping
  clipcmp ping --base-url http://localhost:8000/v1`,
	RunE: runPing,
}

func runPing(cmd *cobra.Command, args []string) error {
	cfg := clientConfig()
	client := embeddings.NewOpenAIClient(cfg)
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		return err
	}

	fmt.Printf("OK: %s serving model %s\n", cfg.BaseURL, cfg.Model)
	return nil
}
