package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/soundprediction/embedlink/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("EMBEDLINK_BASE_URL", "")
	t.Setenv("EMBEDLINK_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:1234", cfg.Endpoint.BaseURL)
	assert.Empty(t, cfg.Endpoint.APIKey)
	assert.Equal(t, 60, cfg.Endpoint.TimeoutSec)
	assert.Equal(t, 0, cfg.Endpoint.MaxRetries)
	assert.Equal(t, "nomic-embed-text", cfg.Embedding.Model)
	assert.Equal(t, "float", cfg.Embedding.EncodingFormat)
	assert.Equal(t, 10, cfg.Embedding.BatchSize)
	assert.False(t, cfg.CircuitBreaker.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("EMBEDLINK_BASE_URL", "http://models.internal:8000")
	t.Setenv("EMBEDLINK_API_KEY", "env-key")
	t.Setenv("EMBEDLINK_MODEL", "text-embedding-3-small")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://models.internal:8000", cfg.Endpoint.BaseURL)
	assert.Equal(t, "env-key", cfg.Endpoint.APIKey)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestOpenAIKeyFallback(t *testing.T) {
	viper.Reset()
	t.Setenv("EMBEDLINK_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-fallback", cfg.Endpoint.APIKey)
}

func TestExplicitKeyBeatsOpenAIKey(t *testing.T) {
	viper.Reset()
	t.Setenv("EMBEDLINK_API_KEY", "explicit")
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.Endpoint.APIKey)
}

func TestLoadFromViperValues(t *testing.T) {
	viper.Reset()
	t.Setenv("EMBEDLINK_BASE_URL", "")
	t.Setenv("EMBEDLINK_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("EMBEDLINK_MODEL", "")

	viper.Set("embedding.batch_size", 25)
	viper.Set("embedding.encoding_format", "base64")
	viper.Set("circuit_breaker.enabled", true)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Embedding.BatchSize)
	assert.Equal(t, "base64", cfg.Embedding.EncodingFormat)
	assert.True(t, cfg.CircuitBreaker.Enabled)
}
