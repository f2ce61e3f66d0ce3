package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/soundprediction/embedlink/pkg/client"
	"github.com/soundprediction/embedlink/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		config      client.Config
		shouldError bool
		errorMsg    string
		wantBase    string
	}{
		{
			name:     "valid http URL",
			config:   client.Config{BaseURL: "http://localhost:1234"},
			wantBase: "http://localhost:1234/v1",
		},
		{
			name:     "valid https URL",
			config:   client.Config{BaseURL: "https://api.example.com", APIKey: "test-key"},
			wantBase: "https://api.example.com/v1",
		},
		{
			name:     "URL with existing v1 path",
			config:   client.Config{BaseURL: "http://localhost:8080/v1"},
			wantBase: "http://localhost:8080/v1",
		},
		{
			name:     "URL with api path",
			config:   client.Config{BaseURL: "http://localhost:8080/api"},
			wantBase: "http://localhost:8080/api",
		},
		{
			name:     "trailing slash is trimmed",
			config:   client.Config{BaseURL: "http://localhost:1234/"},
			wantBase: "http://localhost:1234/v1",
		},
		{
			name:     "empty base URL uses OpenAI",
			config:   client.Config{APIKey: "key"},
			wantBase: "https://api.openai.com/v1",
		},
		{
			name:        "invalid URL format",
			config:      client.Config{BaseURL: "not-a-url"},
			shouldError: true,
			errorMsg:    "baseURL must include scheme",
		},
		{
			name:        "URL without http/https scheme",
			config:      client.Config{BaseURL: "ftp://localhost:8080"},
			shouldError: true,
			errorMsg:    "baseURL must use http:// or https:// scheme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := client.New(tt.config)

			if tt.shouldError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBase, c.BaseURL())
			}
		})
	}
}

func TestCreateEmbeddings(t *testing.T) {
	var gotAuth string
	var gotBody wire.EmbeddingRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/embeddings", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": []float32{0.1, 0.2}},
			},
			"model": "test-model",
			"usage": map[string]int{"prompt_tokens": 2, "total_tokens": 2},
		})
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL, APIKey: "secret"})
	require.NoError(t, err)

	resp, err := c.CreateEmbeddings(context.Background(), wire.EmbeddingRequest{
		Input: "hello", Model: "test-model", EncodingFormat: wire.EncodingFloat,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "hello", gotBody.Input)
	assert.Equal(t, "float", gotBody.EncodingFormat)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, []float32{0.1, 0.2}, resp.Data[0].Embedding.Floats)
}

func TestCreateEmbeddingsNoAuthHeaderWithoutKey(t *testing.T) {
	var sawAuthHeader bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuthHeader = r.Header["Authorization"]
		w.Write([]byte(`{"object":"list","data":[],"model":"m","usage":{}}`))
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.CreateEmbeddings(context.Background(), wire.EmbeddingRequest{Input: "x", Model: "m"})
	require.NoError(t, err)
	assert.False(t, sawAuthHeader, "Authorization header must be omitted without an API key")
}

func TestCreateEmbeddingsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"model not found"}}`))
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.CreateEmbeddings(context.Background(), wire.EmbeddingRequest{Input: "x", Model: "nope"})
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "model not found")
}

func TestCreateEmbeddingsMissingDataField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"object":"list","model":"m"}`))
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.CreateEmbeddings(context.Background(), wire.EmbeddingRequest{Input: "x", Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing data field")
}

func TestCreateEmbeddingsRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"object":"list","data":[{"object":"embedding","index":0,"embedding":[1]}],"model":"m","usage":{}}`))
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL, MaxRetries: 2})
	require.NoError(t, err)

	resp, err := c.CreateEmbeddings(context.Background(), wire.EmbeddingRequest{Input: "x", Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, resp.Data, 1)
}

func TestCreateEmbeddingsNoRetryByDefault(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.CreateEmbeddings(context.Background(), wire.EmbeddingRequest{Input: "x", Model: "m"})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestCreateEmbeddingsNoRetryOnClientError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL, MaxRetries: 3})
	require.NoError(t, err)

	_, err = c.CreateEmbeddings(context.Background(), wire.EmbeddingRequest{Input: "x", Model: "m"})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "4xx responses other than 429 must not be retried")
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/models", r.URL.Path)
		w.Write([]byte(`{"object":"list","data":[{"id":"a"},{"id":"b"}]}`))
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	list, hasData, err := c.ListModels(context.Background())
	require.NoError(t, err)
	assert.True(t, hasData)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "a", list.Data[0].ID)
	assert.Equal(t, "b", list.Data[1].ID)
}

func TestListModelsMissingDataKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"object":"list"}`))
	}))
	defer srv.Close()

	c, err := client.New(client.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	list, hasData, err := c.ListModels(context.Background())
	require.NoError(t, err)
	assert.False(t, hasData)
	assert.Empty(t, list.Data)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := client.New(client.Config{
		BaseURL: srv.URL,
		Breaker: &client.BreakerSettings{Enabled: true, ReadyToTripRatio: 0.5},
	})
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, _, lastErr := c.ListModels(ctx)
		require.Error(t, lastErr)
	}

	_, _, err = c.ListModels(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
}
