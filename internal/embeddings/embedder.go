// Package embeddings provides vector embedding generation
package embeddings

import (
	"context"
	"fmt"
)

// Embedder generates vector embeddings from text, optionally with image context
type Embedder interface {
	// Embed generates an embedding for a single text
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedWithImage generates an embedding for a text with an attached
	// image, passed as a data URI
	EmbedWithImage(ctx context.Context, text, imageURI string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector dimensions, or 0 if unknown
	Dimensions() int

	// Model returns the model identifier
	Model() string

	// Close releases any resources
	Close() error
}

// RequestError reports a failed embedding request: a transport failure,
// a non-2xx status from the remote service, or a response body missing
// the expected fields.
type RequestError struct {
	StatusCode int    // 0 for transport or parse failures
	Body       string // response body excerpt, if any
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("embeddings request failed with status %d: %s", e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("embeddings request failed with status %d", e.StatusCode)
	default:
		return fmt.Sprintf("embeddings request failed: %v", e.Err)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }
