package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics",
	Long: `Show client and cache statistics.

Examples:
  clipcmp stats`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	stats, err := svc.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	fmt.Println("clipcmp Statistics")
	fmt.Println("──────────────────")
	fmt.Printf("Model:             %s\n", stats.Model)
	fmt.Printf("Requests:          %d\n", stats.Requests)
	fmt.Printf("Avg latency:       %.1f ms\n", stats.AvgLatencyMs)
	fmt.Printf("Cache hit rate:    %.1f%%\n", stats.CacheHitRate)
	fmt.Printf("Cached embeddings: %d\n", stats.CachedEmbeddings)
	fmt.Printf("Comparisons:       %d\n", stats.Comparisons)
	fmt.Printf("Storage size:      %.2f MB\n", float64(stats.StorageBytes)/1024/1024)

	return nil
}
