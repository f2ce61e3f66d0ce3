package models_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soundprediction/embedlink/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLister(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		shouldError bool
	}{
		{name: "local endpoint", baseURL: "http://localhost:1234"},
		{name: "endpoint with v1 path", baseURL: "http://localhost:8080/v1"},
		{name: "empty base URL uses OpenAI", baseURL: ""},
		{name: "invalid URL", baseURL: "not-a-url", shouldError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister, err := models.NewLister(tt.baseURL, "test-key")
			if tt.shouldError {
				require.Error(t, err)
				assert.Nil(t, lister)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, lister)
			}
		})
	}
}

func TestListPreservesServerOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models", r.URL.Path)
		w.Write([]byte(`{"object":"list","data":[{"id":"a"},{"id":"b"}]}`))
	}))
	defer srv.Close()

	lister, err := models.NewLister(srv.URL, "")
	require.NoError(t, err)

	options, err := lister.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Option{
		{Name: "a", Value: "a"},
		{Name: "b", Value: "b"},
	}, options)
}

func TestListEmptyOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	lister, err := models.NewLister(srv.URL, "")
	require.NoError(t, err)

	options, err := lister.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list models")
	assert.Empty(t, options)
}
