// Package sqlite provides the SQLite-backed store implementation
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/clipcmp/clipcmp/internal/store"
	"github.com/clipcmp/clipcmp/pkg/types"

	_ "github.com/mattn/go-sqlite3"
)

// Store implements store.Store using SQLite
type Store struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// Config configures the SQLite store
type Config struct {
	Path string // Path to database file
}

// New creates a new SQLite store
func New(cfg Config) (*Store, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA cache_size = -8000",  // 8MB cache
		"PRAGMA temp_store = MEMORY", // temp tables in memory
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{
		db:   db,
		path: cfg.Path,
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	-- Persistent embedding cache
	CREATE TABLE IF NOT EXISTS embeddings (
		content_hash TEXT PRIMARY KEY,
		model TEXT NOT NULL,
		dims INTEGER NOT NULL,
		embedding BLOB NOT NULL, -- float32 array, little-endian
		hit_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	-- Comparison history
	CREATE TABLE IF NOT EXISTS comparisons (
		id TEXT PRIMARY KEY,
		image_hash TEXT NOT NULL,
		prompt TEXT NOT NULL,
		text TEXT NOT NULL,
		score REAL NOT NULL,
		model TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_embeddings_model ON embeddings(model);
	CREATE INDEX IF NOT EXISTS idx_comparisons_created_at ON comparisons(created_at);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`

	_, err := s.db.Exec(schema)
	return err
}

// GetEmbedding looks up a cached embedding by content key
func (s *Store) GetEmbedding(ctx context.Context, key string) ([]float32, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT embedding FROM embeddings WHERE content_hash = ?`, key).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query embedding: %w", err)
	}

	embedding, err := bytesToFloat32(blob)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt embedding for %s: %w", key, err)
	}

	_, _ = s.db.ExecContext(ctx,
		`UPDATE embeddings SET hit_count = hit_count + 1 WHERE content_hash = ?`, key)

	return embedding, true, nil
}

// PutEmbedding caches an embedding under a content key
func (s *Store) PutEmbedding(ctx context.Context, key, model string, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO embeddings (content_hash, model, dims, embedding, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET
			model = excluded.model,
			dims = excluded.dims,
			embedding = excluded.embedding
	`, key, model, len(embedding), float32ToBytes(embedding), time.Now())

	if err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}
	return nil
}

// CountEmbeddings returns the number of cached embeddings
func (s *Store) CountEmbeddings(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM embeddings`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count embeddings: %w", err)
	}
	return count, nil
}

// AddComparison records a comparison outcome
func (s *Store) AddComparison(ctx context.Context, c *types.Comparison) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comparisons (id, image_hash, prompt, text, score, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.ImageHash, c.Prompt, c.Text, c.Score, c.Model, c.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert comparison: %w", err)
	}
	return nil
}

// ListComparisons returns past comparisons, newest first
func (s *Store) ListComparisons(ctx context.Context, opts store.ListOptions) ([]*types.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, image_hash, prompt, text, score, model, created_at
		FROM comparisons
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query comparisons: %w", err)
	}
	defer rows.Close()

	var out []*types.Comparison
	for rows.Next() {
		var c types.Comparison
		if err := rows.Scan(&c.ID, &c.ImageHash, &c.Prompt, &c.Text, &c.Score, &c.Model, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comparison: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// DeleteComparisons removes all comparison history
func (s *Store) DeleteComparisons(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM comparisons`); err != nil {
		return fmt.Errorf("failed to delete comparisons: %w", err)
	}
	return nil
}

// CountComparisons returns the number of stored comparisons
func (s *Store) CountComparisons(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comparisons`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count comparisons: %w", err)
	}
	return count, nil
}

// StorageBytes returns the size of the backing database file
func (s *Store) StorageBytes(ctx context.Context) (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Compact optimizes storage
func (s *Store) Compact(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return fmt.Errorf("failed to vacuum: %w", err)
	}
	return nil
}

// Close releases resources
func (s *Store) Close() error {
	return s.db.Close()
}
