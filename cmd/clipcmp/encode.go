package main

import (
	"fmt"

	"github.com/clipcmp/clipcmp/internal/imaging"
	"github.com/spf13/cobra"
)

var encodeSummary bool

var encodeCmd = &cobra.Command{
	Use:   "encode <image>",
	Short: "Encode an image as a PNG data URI",
	Long: `Re-serialize an image as PNG and print it as a base64 data URI, the
exact payload sent to the embeddings endpoint. Any format Go can decode
(JPEG, PNG, GIF) is accepted; the output is always PNG.

Examples:
  clipcmp encode images/green_dog.jpeg
  clipcmp encode images/green_dog.jpeg --summary`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().BoolVar(&encodeSummary, "summary", false, "Print only the prefix and payload length")
}

func runEncode(cmd *cobra.Command, args []string) error {
	uri, err := imaging.EncodeFile(args[0])
	if err != nil {
		return err
	}

	if encodeSummary {
		fmt.Printf("%s... (%d bytes total)\n", imaging.DataURIPrefix, len(uri))
		return nil
	}

	fmt.Println(uri)
	return nil
}
