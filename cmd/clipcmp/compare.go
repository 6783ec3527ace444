package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/clipcmp/clipcmp/pkg/types"
	"github.com/spf13/cobra"
)

var (
	comparePrompt string
	compareJSON   bool
	compareRawDot bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <image> <text>...",
	Short: "Score an image against candidate texts",
	Long: `Compare an image against one or more candidate texts. The image is
re-encoded as a PNG data URI and embedded together with a prompt; each
candidate text is embedded on its own; the similarity between the image
embedding and each text embedding is reported.

A matching caption scores noticeably higher than an unrelated one:

  clipcmp compare images/green_dog.jpeg \
      "A green dog looking at the camera" \
      "The stock market fell today"

Examples:
  clipcmp compare photo.jpeg "a cat on a sofa"
  clipcmp compare photo.jpeg "a cat" "a dog" --json
  clipcmp compare photo.jpeg "a cat" --prompt "What animal is shown?"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&comparePrompt, "prompt", "", "Prompt sent with the image (default: \"Describe the image in detail\")")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Output as JSON")
	compareCmd.Flags().BoolVar(&compareRawDot, "raw-dot", false, "Report the raw dot product instead of normalizing (assumes unit-norm server output)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Compare(ctx, types.CompareRequest{
		ImagePath: args[0],
		Prompt:    comparePrompt,
		Texts:     args[1:],
		RawDot:    compareRawDot,
	})
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if compareJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if verbose {
		fmt.Printf("Model:  %s\n", result.Model)
		fmt.Printf("Prompt: %s\n", result.Prompt)
		fmt.Printf("Dims:   %d\n\n", result.Dimensions)
	}

	for _, sc := range result.Scores {
		fmt.Printf("%.4f  %s\n", sc.Score, sc.Text)
	}

	if verbose {
		fmt.Printf("\n(%dms)\n", result.Timing)
	}
	return nil
}
