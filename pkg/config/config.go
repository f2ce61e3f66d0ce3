// Package config loads embedlink configuration from file, environment and
// flags through viper.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Endpoint is the upstream OpenAI-compatible server
	Endpoint EndpointConfig `mapstructure:"endpoint" yaml:"endpoint"`

	// Embedding configuration
	Embedding EmbeddingConfig `mapstructure:"embedding" yaml:"embedding"`

	// CircuitBreaker configuration
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker" yaml:"circuit_breaker"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
	Mode string `mapstructure:"mode" yaml:"mode"` // gin mode: debug, release, test
}

// EndpointConfig holds the upstream endpoint credential and transport
// settings.
type EndpointConfig struct {
	BaseURL    string `mapstructure:"base_url" yaml:"base_url"`
	APIKey     string `mapstructure:"api_key" yaml:"api_key"`
	TimeoutSec int    `mapstructure:"timeout" yaml:"timeout"` // in seconds
	MaxRetries int    `mapstructure:"max_retries" yaml:"max_retries"`
}

// EmbeddingConfig holds embedding request defaults.
type EmbeddingConfig struct {
	Model          string `mapstructure:"model" yaml:"model"`
	EncodingFormat string `mapstructure:"encoding_format" yaml:"encoding_format"` // float, base64
	Dimensions     int    `mapstructure:"dimensions" yaml:"dimensions"`
	User           string `mapstructure:"user" yaml:"user"`
	BatchSize      int    `mapstructure:"batch_size" yaml:"batch_size"`
}

// CircuitBreakerConfig holds configuration for circuit breaking on the
// upstream endpoint.
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled" yaml:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests" yaml:"max_requests"`
	Interval         int     `mapstructure:"interval" yaml:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout" yaml:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio" yaml:"ready_to_trip_ratio"`
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")

	// Endpoint defaults: LM Studio's local server port
	viper.SetDefault("endpoint.base_url", "http://localhost:1234")
	viper.SetDefault("endpoint.api_key", "")
	viper.SetDefault("endpoint.timeout", 60)
	viper.SetDefault("endpoint.max_retries", 0)

	// Embedding defaults
	viper.SetDefault("embedding.model", "nomic-embed-text")
	viper.SetDefault("embedding.encoding_format", "float")
	viper.SetDefault("embedding.batch_size", 10)

	// Circuit breaker defaults
	viper.SetDefault("circuit_breaker.enabled", false)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)
}

// overrideWithEnv overrides config with environment variables.
func overrideWithEnv(config *Config) {
	if baseURL := os.Getenv("EMBEDLINK_BASE_URL"); baseURL != "" {
		config.Endpoint.BaseURL = baseURL
	}
	if apiKey := os.Getenv("EMBEDLINK_API_KEY"); apiKey != "" {
		config.Endpoint.APIKey = apiKey
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" && config.Endpoint.APIKey == "" {
		config.Endpoint.APIKey = apiKey
	}

	if model := os.Getenv("EMBEDLINK_MODEL"); model != "" {
		config.Embedding.Model = model
	}

	// Server settings
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if parsed, err := strconv.Atoi(port); err == nil {
			config.Server.Port = parsed
		}
	}
}
