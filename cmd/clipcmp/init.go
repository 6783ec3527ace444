package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/clipcmp/clipcmp/internal/compare"
	"github.com/clipcmp/clipcmp/internal/embeddings"
	"github.com/clipcmp/clipcmp/internal/store/sqlite"
)

// clientConfig merges flags over the env-var defaults
func clientConfig() embeddings.OpenAIConfig {
	cfg := embeddings.DefaultOpenAIConfig()
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if model != "" {
		cfg.Model = model
	}
	return cfg
}

// initService creates and wires the comparison service
func initService() (compare.Service, error) {
	dir := dataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".clipcmp")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dir, "clipcmp.db")
	st, err := sqlite.New(sqlite.Config{Path: dbPath})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	cfg := clientConfig()
	cfg.Persist = st
	embedder := embeddings.NewOpenAIClient(cfg)

	svc := compare.NewService(embedder, st, compare.DefaultConfig())

	if verbose {
		fmt.Printf("Data directory: %s\n", dir)
		fmt.Printf("Database: %s\n", dbPath)
		fmt.Printf("Endpoint: %s\n", cfg.BaseURL)
		fmt.Printf("Model: %s\n", cfg.Model)
	}

	return svc, nil
}
