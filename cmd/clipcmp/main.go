// clipcmp - compare text and images in a shared embedding space
// Talks to an OpenAI-compatible multimodal embeddings endpoint (e.g. MLX server)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"

	// Global flags
	dataDir string
	baseURL string
	apiKey  string
	model   string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clipcmp",
	Short: "Text/image embedding comparison tool",
	Long: `clipcmp compares text and images in a shared embedding space. It sends
inputs to an OpenAI-compatible multimodal embeddings endpoint (such as a
local MLX server), attaches images as PNG data URIs, and scores the
returned vectors with cosine similarity.

Embeddings are cached locally (in memory and in SQLite) so repeated
comparisons of the same inputs never hit the server twice.

Examples:
  # Score an image against candidate captions
  clipcmp compare images/green_dog.jpeg "A green dog looking at the camera"

  # Inspect a single embedding
  clipcmp embed "The stock market fell today"

  # Encode an image as a data URI
  clipcmp encode images/green_dog.jpeg

  # Expose the comparison API over HTTP
  clipcmp serve`,
	Version: Version,
}

func init() {
	// Global flags; connection settings fall back to CLIPCMP_* env vars
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ~/.clipcmp)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Embeddings endpoint base URL (default: http://localhost:8000/v1)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key; local servers accept any placeholder")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "", "Embedding model identifier")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(embedCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(pingCmd)
}
