// Package embeddings provides embedding generation via an OpenAI-compatible endpoint
package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/clipcmp/clipcmp/internal/cache"
	"github.com/clipcmp/clipcmp/pkg/types"
)

// Persist is an optional second-level cache for embeddings, checked after
// the in-memory LRU and before the wire. Implemented by the SQLite store.
type Persist interface {
	GetEmbedding(ctx context.Context, key string) ([]float32, bool, error)
	PutEmbedding(ctx context.Context, key, model string, embedding []float32) error
}

// OpenAIClient talks to an OpenAI-compatible /embeddings endpoint, such as
// an MLX server. Multimodal inputs attach the image as a data URI via the
// image_url extension field.
type OpenAIClient struct {
	baseURL    string
	apiKey     string
	model      string
	dims       int
	httpClient *http.Client
	cache      *cache.EmbeddingCache
	persist    Persist // may be nil

	// Stats
	requests atomic.Int64
	latency  atomic.Int64 // cumulative latency in microseconds
}

// OpenAIConfig configures the client
type OpenAIConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Dimensions int
	CacheSize  int
	Timeout    time.Duration
	Persist    Persist
}

// DefaultOpenAIConfig returns sensible defaults for a local MLX server
func DefaultOpenAIConfig() OpenAIConfig {
	return OpenAIConfig{
		BaseURL: getEnvOrDefault("CLIPCMP_BASE_URL", "http://localhost:8000/v1"),
		// Local servers accept any placeholder key
		APIKey:     getEnvOrDefault("CLIPCMP_API_KEY", "not-needed"),
		Model:      getEnvOrDefault("CLIPCMP_MODEL", "clip-vit-base-patch32"),
		Dimensions: 512, // CLIP ViT-B/32 dimensions
		CacheSize:  1000,
		Timeout:    60 * time.Second,
	}
}

// NewOpenAIClient creates a new embeddings client
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	def := DefaultOpenAIConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.APIKey == "" {
		cfg.APIKey = def.APIKey
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = def.CacheSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}

	return &OpenAIClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		dims:    cfg.Dimensions,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:   cache.NewEmbeddingCache(cfg.CacheSize),
		persist: cfg.Persist,
	}
}

// Embed generates an embedding for the given text
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	return c.embed(ctx, text, "")
}

// EmbedWithImage generates an embedding for the text with the image
// attached as context
func (c *OpenAIClient) EmbedWithImage(ctx context.Context, text, imageURI string) ([]float32, error) {
	return c.embed(ctx, text, imageURI)
}

func (c *OpenAIClient) embed(ctx context.Context, text, imageURI string) ([]float32, error) {
	if embedding, ok := c.cache.Get(c.model, text, imageURI); ok {
		return embedding, nil
	}

	key := cache.Key(c.model, text, imageURI)
	if c.persist != nil {
		if embedding, ok, err := c.persist.GetEmbedding(ctx, key); err == nil && ok {
			c.cache.Put(c.model, text, imageURI, embedding)
			return embedding, nil
		}
	}

	start := time.Now()

	embedding, err := c.request(ctx, text, imageURI)
	if err != nil {
		return nil, err
	}

	c.requests.Add(1)
	c.latency.Add(time.Since(start).Microseconds())

	c.cache.Put(c.model, text, imageURI, embedding)
	if c.persist != nil {
		// Persist failures must not fail the embedding itself
		_ = c.persist.PutEmbedding(ctx, key, c.model, embedding)
	}

	return embedding, nil
}

func (c *OpenAIClient) request(ctx context.Context, text, imageURI string) ([]float32, error) {
	reqBody := types.EmbeddingsRequest{
		Model:          c.model,
		Input:          []string{text},
		EncodingFormat: "float",
		ImageURL:       imageURI,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed types.EmbeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &RequestError{Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	// One input per request, so exactly one result is consumed
	if len(parsed.Data) == 0 {
		return nil, &RequestError{Err: fmt.Errorf("response contains no embeddings")}
	}
	embedding := parsed.Data[0].Embedding
	if len(embedding) == 0 {
		return nil, &RequestError{Err: fmt.Errorf("response contains an empty embedding")}
	}

	return embedding, nil
}

// EmbedBatch generates embeddings for multiple texts, sequentially: the
// remote endpoint is treated as strictly one input per request
func (c *OpenAIClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := c.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed text %d: %w", i, err)
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

// Dimensions returns the configured embedding dimensions
func (c *OpenAIClient) Dimensions() int {
	return c.dims
}

// Model returns the current embedding model name
func (c *OpenAIClient) Model() string {
	return c.model
}

// Close releases resources
func (c *OpenAIClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// Ping checks that the endpoint is reachable and serving embeddings
func (c *OpenAIClient) Ping(ctx context.Context) error {
	if _, err := c.request(ctx, "ping", ""); err != nil {
		return fmt.Errorf("embeddings health check failed: %w", err)
	}
	return nil
}

// Stats returns client statistics
func (c *OpenAIClient) Stats() (requests int64, avgLatencyMs float64, cacheHitRate float64) {
	requests = c.requests.Load()
	if requests > 0 {
		avgLatencyMs = float64(c.latency.Load()) / float64(requests) / 1000
	}
	_, _, cacheHitRate = c.cache.Stats()
	return
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
