package compare

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/clipcmp/clipcmp/internal/embeddings"
	"github.com/clipcmp/clipcmp/internal/imaging"
	"github.com/clipcmp/clipcmp/internal/store"
	"github.com/clipcmp/clipcmp/internal/vecmath"
	"github.com/clipcmp/clipcmp/pkg/types"

	"github.com/google/uuid"
)

// clientStats is implemented by embedders that track request statistics
type clientStats interface {
	Stats() (requests int64, avgLatencyMs float64, cacheHitRate float64)
}

type serviceImpl struct {
	embedder embeddings.Embedder
	store    store.Store
	config   Config
}

// NewService creates a new comparison service
func NewService(emb embeddings.Embedder, st store.Store, cfg Config) Service {
	if cfg.DefaultPrompt == "" {
		cfg.DefaultPrompt = DefaultConfig().DefaultPrompt
	}
	return &serviceImpl{
		embedder: emb,
		store:    st,
		config:   cfg,
	}
}

// Compare embeds the image and each candidate text, then scores them.
// Requests run sequentially; any failure aborts the whole comparison and
// nothing is recorded.
func (s *serviceImpl) Compare(ctx context.Context, req types.CompareRequest) (*types.CompareResult, error) {
	start := time.Now()

	if len(req.Texts) == 0 {
		return nil, fmt.Errorf("at least one candidate text is required")
	}

	imageURI := req.ImageURI
	if imageURI == "" {
		if req.ImagePath == "" {
			return nil, fmt.Errorf("an image path or data URI is required")
		}
		var err error
		imageURI, err = imaging.EncodeFile(req.ImagePath)
		if err != nil {
			return nil, err
		}
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = s.config.DefaultPrompt
	}

	imageEmb, err := s.embedder.EmbedWithImage(ctx, prompt, imageURI)
	if err != nil {
		return nil, fmt.Errorf("failed to embed image: %w", err)
	}

	scores := make([]types.CandidateScore, len(req.Texts))
	for i, text := range req.Texts {
		textEmb, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed text %q: %w", text, err)
		}

		var score float32
		if req.RawDot {
			score, err = vecmath.DotProduct(imageEmb, textEmb)
		} else {
			score, err = vecmath.CosineSimilarity(imageEmb, textEmb)
		}
		if err != nil {
			return nil, err
		}

		scores[i] = types.CandidateScore{Text: text, Score: score}
	}

	result := &types.CompareResult{
		ID:         uuid.New().String(),
		Prompt:     prompt,
		Model:      s.embedder.Model(),
		Dimensions: len(imageEmb),
		Scores:     scores,
		Timing:     time.Since(start).Milliseconds(),
	}

	// History is recorded only once every candidate scored
	imageHash := hashURI(imageURI)
	for _, sc := range scores {
		err := s.store.AddComparison(ctx, &types.Comparison{
			ID:        uuid.New().String(),
			ImageHash: imageHash,
			Prompt:    prompt,
			Text:      sc.Text,
			Score:     sc.Score,
			Model:     result.Model,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record comparison: %w", err)
		}
	}

	return result, nil
}

// EmbedText returns the embedding for a plain text
func (s *serviceImpl) EmbedText(ctx context.Context, text string) (*types.EmbedResponse, error) {
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	emb, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	return &types.EmbedResponse{
		Embedding:  emb,
		Dimensions: len(emb),
		Model:      s.embedder.Model(),
	}, nil
}

// EmbedImage returns the embedding for a text with image context
func (s *serviceImpl) EmbedImage(ctx context.Context, text, imageURI string) (*types.EmbedResponse, error) {
	if imageURI == "" {
		return nil, fmt.Errorf("image data URI is required")
	}
	if text == "" {
		text = s.config.DefaultPrompt
	}

	emb, err := s.embedder.EmbedWithImage(ctx, text, imageURI)
	if err != nil {
		return nil, err
	}

	return &types.EmbedResponse{
		Embedding:  emb,
		Dimensions: len(emb),
		Model:      s.embedder.Model(),
	}, nil
}

// History returns past comparisons, newest first
func (s *serviceImpl) History(ctx context.Context, opts store.ListOptions) ([]*types.Comparison, error) {
	return s.store.ListComparisons(ctx, opts)
}

// ClearHistory removes all stored comparisons
func (s *serviceImpl) ClearHistory(ctx context.Context) error {
	return s.store.DeleteComparisons(ctx)
}

// Stats returns client and storage statistics
func (s *serviceImpl) Stats(ctx context.Context) (*types.StatsResponse, error) {
	resp := &types.StatsResponse{
		Model: s.embedder.Model(),
	}

	if cs, ok := s.embedder.(clientStats); ok {
		resp.Requests, resp.AvgLatencyMs, resp.CacheHitRate = cs.Stats()
	}

	cached, err := s.store.CountEmbeddings(ctx)
	if err != nil {
		return nil, err
	}
	resp.CachedEmbeddings = cached

	comparisons, err := s.store.CountComparisons(ctx)
	if err != nil {
		return nil, err
	}
	resp.Comparisons = comparisons

	if size, err := s.store.StorageBytes(ctx); err == nil {
		resp.StorageBytes = size
	}

	return resp, nil
}

// Close releases resources
func (s *serviceImpl) Close() error {
	if err := s.embedder.Close(); err != nil {
		s.store.Close()
		return err
	}
	return s.store.Close()
}

func hashURI(uri string) string {
	h := sha256.Sum256([]byte(uri))
	return hex.EncodeToString(h[:16])
}
