// Package compare orchestrates image/text embedding comparisons
package compare

import (
	"context"

	"github.com/clipcmp/clipcmp/internal/store"
	"github.com/clipcmp/clipcmp/pkg/types"
)

// Service orchestrates comparison operations
type Service interface {
	// Compare embeds an image (with prompt) and candidate texts, then
	// scores each candidate against the image embedding
	Compare(ctx context.Context, req types.CompareRequest) (*types.CompareResult, error)

	// EmbedText returns the embedding for a plain text
	EmbedText(ctx context.Context, text string) (*types.EmbedResponse, error)

	// EmbedImage returns the embedding for a text with image context
	EmbedImage(ctx context.Context, text, imageURI string) (*types.EmbedResponse, error)

	// History returns past comparisons, newest first
	History(ctx context.Context, opts store.ListOptions) ([]*types.Comparison, error)

	// ClearHistory removes all stored comparisons
	ClearHistory(ctx context.Context) error

	// Stats returns client and storage statistics
	Stats(ctx context.Context) (*types.StatsResponse, error)

	// Close releases resources
	Close() error
}

// Config configures the comparison service
type Config struct {
	// DefaultPrompt is the text sent alongside the image when the request
	// does not specify one
	DefaultPrompt string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		DefaultPrompt: "Describe the image in detail",
	}
}
