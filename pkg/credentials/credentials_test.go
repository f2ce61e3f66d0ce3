package credentials_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soundprediction/embedlink/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	desc := credentials.Describe()

	assert.Equal(t, "openAiCompatibleApi", desc.Name)
	require.Len(t, desc.Fields, 2)

	assert.Equal(t, "base_url", desc.Fields[0].Name)
	assert.True(t, desc.Fields[0].Required)
	assert.False(t, desc.Fields[0].Secret)

	assert.Equal(t, "api_key", desc.Fields[1].Name)
	assert.False(t, desc.Fields[1].Required)
	assert.True(t, desc.Fields[1].Secret)
}

func TestCredentialTest(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		shouldError bool
		errorMsg    string
	}{
		{
			name:   "models with entries",
			status: http.StatusOK,
			body:   `{"object":"list","data":[{"id":"a"}]}`,
		},
		{
			name:   "empty data array is still a pass",
			status: http.StatusOK,
			body:   `{"object":"list","data":[]}`,
		},
		{
			name:        "missing data key",
			status:      http.StatusOK,
			body:        `{"object":"list"}`,
			shouldError: true,
			errorMsg:    "no data field",
		},
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			body:        `{"error":{"message":"invalid api key"}}`,
			shouldError: true,
			errorMsg:    "connection test failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			cred := credentials.Credential{BaseURL: srv.URL, APIKey: "k"}
			err := cred.Test(context.Background())

			if tt.shouldError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, 1, calls, "connection test must not retry")
		})
	}
}

func TestCredentialTestBadBaseURL(t *testing.T) {
	cred := credentials.Credential{BaseURL: "localhost-without-scheme"}
	err := cred.Test(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credential")
}
