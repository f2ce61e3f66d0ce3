package embedlink

import (
	"fmt"

	"github.com/soundprediction/embedlink/pkg/config"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models the endpoint exposes",
	Long: `List the models the configured endpoint exposes, in the order the
server returns them.`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	link, err := newLink(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}

	options, err := link.Models(cmd.Context())
	if err != nil {
		return err
	}

	if len(options) == 0 {
		fmt.Println("No models found.")
		return nil
	}

	for _, opt := range options {
		fmt.Println(opt.Value)
	}
	return nil
}
