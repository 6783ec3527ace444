// Package types defines the core data structures for clipcmp
package types

import "time"

// EmbeddingsRequest is the body sent to an OpenAI-compatible /embeddings endpoint.
type EmbeddingsRequest struct {
	Model          string   `json:"model"`
	Input          []string `json:"input"`
	EncodingFormat string   `json:"encoding_format,omitempty"` // float or base64

	// ImageURL is an extension field understood by multimodal embedding
	// servers (e.g. MLX server). It carries a data URI that provides image
	// context for the text input.
	ImageURL string `json:"image_url,omitempty"`
}

// EmbeddingsResponse is the body returned by an OpenAI-compatible /embeddings endpoint.
type EmbeddingsResponse struct {
	Object string          `json:"object"`
	Data   []EmbeddingData `json:"data"`
	Model  string          `json:"model"`
	Usage  *Usage          `json:"usage,omitempty"`
}

// EmbeddingData is a single embedding result within an EmbeddingsResponse.
type EmbeddingData struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

// Usage reports token accounting from the remote service.
type Usage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// CompareRequest asks for an image to be scored against candidate texts.
type CompareRequest struct {
	ImagePath string   `json:"image_path,omitempty"`
	ImageURI  string   `json:"image_uri,omitempty"` // pre-encoded data URI, used if set
	Prompt    string   `json:"prompt,omitempty"`    // text sent alongside the image
	Texts     []string `json:"texts"`
	RawDot    bool     `json:"raw_dot,omitempty"` // skip normalization, trust server-side unit norms
}

// CandidateScore is the similarity of one candidate text against the image embedding.
type CandidateScore struct {
	Text  string  `json:"text"`
	Score float32 `json:"score"`
}

// CompareResult is the outcome of a comparison.
type CompareResult struct {
	ID         string           `json:"id"`
	Prompt     string           `json:"prompt"`
	Model      string           `json:"model"`
	Dimensions int              `json:"dimensions"`
	Scores     []CandidateScore `json:"scores"`
	Timing     int64            `json:"timing_ms"`
}

// Comparison is a stored record of a past comparison.
type Comparison struct {
	ID        string    `json:"id"`
	ImageHash string    `json:"image_hash"`
	Prompt    string    `json:"prompt"`
	Text      string    `json:"text"`
	Score     float32   `json:"score"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// EmbedRequest asks for a single embedding.
type EmbedRequest struct {
	Text     string `json:"text"`
	ImageURI string `json:"image_uri,omitempty"`
}

// EmbedResponse carries a single embedding back to the caller.
type EmbedResponse struct {
	Embedding  []float32 `json:"embedding"`
	Dimensions int       `json:"dimensions"`
	Model      string    `json:"model"`
}

// StatsResponse contains statistics about the client and local storage.
type StatsResponse struct {
	Requests         int64   `json:"requests"`
	AvgLatencyMs     float64 `json:"avg_latency_ms"`
	CacheHitRate     float64 `json:"cache_hit_rate"`
	CachedEmbeddings int     `json:"cached_embeddings"`
	Comparisons      int     `json:"comparisons"`
	Model            string  `json:"model"`
	StorageBytes     int64   `json:"storage_bytes"`
}
