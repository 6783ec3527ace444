// Package store defines the local persistence interface
package store

import (
	"context"

	"github.com/clipcmp/clipcmp/pkg/types"
)

// Store persists embeddings and comparison history between runs
type Store interface {
	// GetEmbedding looks up a cached embedding by content key
	GetEmbedding(ctx context.Context, key string) ([]float32, bool, error)

	// PutEmbedding caches an embedding under a content key
	PutEmbedding(ctx context.Context, key, model string, embedding []float32) error

	// CountEmbeddings returns the number of cached embeddings
	CountEmbeddings(ctx context.Context) (int, error)

	// AddComparison records a comparison outcome
	AddComparison(ctx context.Context, c *types.Comparison) error

	// ListComparisons returns past comparisons, newest first
	ListComparisons(ctx context.Context, opts ListOptions) ([]*types.Comparison, error)

	// DeleteComparisons removes all comparison history
	DeleteComparisons(ctx context.Context) error

	// CountComparisons returns the number of stored comparisons
	CountComparisons(ctx context.Context) (int, error)

	// StorageBytes returns the size of the backing database file
	StorageBytes(ctx context.Context) (int64, error)

	// Compact optimizes storage (VACUUM)
	Compact(ctx context.Context) error

	// Close releases resources
	Close() error
}

// ListOptions configures history queries
type ListOptions struct {
	Limit  int
	Offset int
}
