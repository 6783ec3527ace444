package embeddings

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
	"sync/atomic"
)

// MockEmbedder is a deterministic in-process Embedder for tests and offline
// use. The vector for a given (text, image) input is derived from a content
// hash and normalized to unit length, so identical inputs always embed to
// identical vectors and distinct inputs land in distinct directions.
type MockEmbedder struct {
	dims  int
	model string
	calls atomic.Int64
}

// NewMockEmbedder creates a mock embedder producing vectors of dims length
func NewMockEmbedder(dims int) *MockEmbedder {
	if dims <= 0 {
		dims = 512
	}
	return &MockEmbedder{dims: dims, model: "mock"}
}

// Embed generates a deterministic pseudo-embedding for the text
func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return m.EmbedWithImage(ctx, text, "")
}

// EmbedWithImage generates a deterministic pseudo-embedding for the
// (text, image) pair
func (m *MockEmbedder) EmbedWithImage(ctx context.Context, text, imageURI string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RequestError{Err: err}
	}
	m.calls.Add(1)

	seed := sha256.Sum256([]byte(text + "\x00" + imageURI))
	v := make([]float32, m.dims)

	// Expand the digest into reproducible pseudo-random components
	state := binary.LittleEndian.Uint64(seed[:8])
	for i := range v {
		state = state*6364136223846793005 + 1442695040888963407
		v[i] = float32(int32(state>>32)) / float32(1<<31)
	}

	// Unit-normalize, like real embedding servers do
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum > 0 {
		inv := float32(1.0 / math.Sqrt(float64(sum)))
		for i := range v {
			v[i] *= inv
		}
	}

	return v, nil
}

// EmbedBatch generates embeddings for multiple texts
func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = emb
	}
	return out, nil
}

// Dimensions returns the embedding dimensions
func (m *MockEmbedder) Dimensions() int { return m.dims }

// Model returns the model identifier
func (m *MockEmbedder) Model() string { return m.model }

// Close releases resources
func (m *MockEmbedder) Close() error { return nil }

// Calls returns how many embeddings were generated
func (m *MockEmbedder) Calls() int64 { return m.calls.Load() }
