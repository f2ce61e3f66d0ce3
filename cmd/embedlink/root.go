package embedlink

import (
	"fmt"
	"os"
	"time"

	"github.com/soundprediction/embedlink"
	"github.com/soundprediction/embedlink/pkg/client"
	"github.com/soundprediction/embedlink/pkg/config"
	"github.com/soundprediction/embedlink/pkg/credentials"
	"github.com/soundprediction/embedlink/pkg/embedder"
	"github.com/soundprediction/embedlink/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "embedlink",
		Short: "Embedlink: OpenAI-compatible embedding client",
		Long: `Embedlink talks to any OpenAI-compatible embeddings endpoint (LM Studio,
Ollama, vLLM, the hosted OpenAI API) and exposes it as a library, a CLI
and a small REST server.

Complete documentation is available at https://github.com/soundprediction/embedlink`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.embedlink.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("base-url", "", "endpoint base URL")
	rootCmd.PersistentFlags().String("api-key", "", "endpoint API key")
	rootCmd.PersistentFlags().String("model", "", "embedding model name")

	// Bind flags to viper
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("endpoint.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("endpoint.api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	viper.BindPFlag("embedding.model", rootCmd.PersistentFlags().Lookup("model"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".embedlink" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".embedlink")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLink builds an embedlink client from the loaded configuration.
func newLink(cfg *config.Config) (*embedlink.Client, error) {
	var breaker *client.BreakerSettings
	if cfg.CircuitBreaker.Enabled {
		breaker = &client.BreakerSettings{
			Enabled:          true,
			MaxRequests:      cfg.CircuitBreaker.MaxRequests,
			Interval:         time.Duration(cfg.CircuitBreaker.Interval) * time.Second,
			Timeout:          time.Duration(cfg.CircuitBreaker.Timeout) * time.Second,
			ReadyToTripRatio: cfg.CircuitBreaker.ReadyToTripRatio,
		}
	}

	return embedlink.New(embedlink.Config{
		Credential: credentials.Credential{
			BaseURL: cfg.Endpoint.BaseURL,
			APIKey:  cfg.Endpoint.APIKey,
		},
		Embedding: embedder.Options{
			Model:          cfg.Embedding.Model,
			EncodingFormat: cfg.Embedding.EncodingFormat,
			Dimensions:     cfg.Embedding.Dimensions,
			User:           cfg.Embedding.User,
			BatchSize:      cfg.Embedding.BatchSize,
		},
		Timeout:    time.Duration(cfg.Endpoint.TimeoutSec) * time.Second,
		MaxRetries: cfg.Endpoint.MaxRetries,
		Breaker:    breaker,
		Logger:     logger.NewDefaultLogger(logger.ParseLevel(cfg.Log.Level)),
	})
}
