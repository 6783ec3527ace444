package main

import (
	"context"
	"fmt"

	"github.com/clipcmp/clipcmp/internal/store"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past comparisons",
	Long: `List recorded comparisons, newest first.

Examples:
  clipcmp history
  clipcmp history --limit 5
  clipcmp history clear`,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all comparison history",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum results")
	historyCmd.AddCommand(historyClearCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	history, err := svc.History(ctx, store.ListOptions{Limit: historyLimit})
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(history) == 0 {
		fmt.Println("No comparisons recorded")
		return nil
	}

	for _, c := range history {
		fmt.Printf("%.4f  %s\n", c.Score, truncate(c.Text, 70))
		fmt.Printf("        image %s  model %s  %s\n", c.ImageHash[:12], c.Model, c.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.ClearHistory(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Println("History cleared")
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
