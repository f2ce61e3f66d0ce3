package embedlink

import (
	"fmt"

	"github.com/soundprediction/embedlink/pkg/config"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connectivity to the configured endpoint",
	Long: `Test connectivity to the configured endpoint by listing its models and
checking the response shape. Exits non-zero when the endpoint is not an
OpenAI-compatible server.`,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	link, err := newLink(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}

	if err := link.TestConnection(cmd.Context()); err != nil {
		return err
	}

	fmt.Printf("Connection to %s OK\n", cfg.Endpoint.BaseURL)
	return nil
}
