package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/clipcmp/clipcmp/internal/imaging"
	"github.com/clipcmp/clipcmp/internal/vecmath"
	"github.com/clipcmp/clipcmp/pkg/types"
	"github.com/spf13/cobra"
)

var (
	embedImage string
	embedJSON  bool
)

var embedCmd = &cobra.Command{
	Use:   "embed <text>",
	Short: "Generate a single embedding",
	Long: `Generate an embedding for a text, optionally with image context.
Without --json only the dimensions and L2 norm are printed; with --json
the full vector is emitted.

Examples:
  clipcmp embed "A green dog looking at the camera"
  clipcmp embed "Describe the image in detail" --image images/green_dog.jpeg
  clipcmp embed "some text" --json > vector.json`,
	Args: cobra.ExactArgs(1),
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().StringVarP(&embedImage, "image", "i", "", "Attach an image file as context")
	embedCmd.Flags().BoolVar(&embedJSON, "json", false, "Output the full vector as JSON")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	svc, err := initService()
	if err != nil {
		return err
	}
	defer svc.Close()

	var resp *types.EmbedResponse
	if embedImage != "" {
		uri, err := imaging.EncodeFile(embedImage)
		if err != nil {
			return err
		}
		resp, err = svc.EmbedImage(ctx, args[0], uri)
		if err != nil {
			return fmt.Errorf("embedding failed: %w", err)
		}
	} else {
		resp, err = svc.EmbedText(ctx, args[0])
		if err != nil {
			return fmt.Errorf("embedding failed: %w", err)
		}
	}

	if embedJSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(resp)
	}

	fmt.Printf("Model:      %s\n", resp.Model)
	fmt.Printf("Dimensions: %d\n", resp.Dimensions)
	fmt.Printf("L2 norm:    %.6f\n", vecmath.L2Norm(resp.Embedding))
	return nil
}
