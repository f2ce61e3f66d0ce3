package embedlink

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/soundprediction/embedlink/pkg/config"
	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed [text]...",
	Short: "Embed one or more texts",
	Long: `Embed one or more texts against the configured endpoint and print the
result as JSON.

A single text is sent as one request. Multiple texts are batched; blank
texts and texts the endpoint rejects come back as empty embeddings so
the output stays aligned with the input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	link, err := newLink(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if len(args) == 1 {
		result, err := link.EmbedText(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return enc.Encode(result)
	}

	vectors, err := link.EmbedDocuments(cmd.Context(), args)
	if err != nil {
		return err
	}
	return enc.Encode(vectors)
}
