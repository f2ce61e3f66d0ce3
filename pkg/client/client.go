// Package client implements a minimal HTTP client for OpenAI-compatible
// embeddings servers (LM Studio, Ollama, vLLM, LocalAI, or the hosted API).
//
// The client speaks the documented REST surface directly:
//
//	GET  {base}/models
//	POST {base}/embeddings
//
// Base64-encoded embeddings are passed through verbatim; see pkg/wire.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/soundprediction/embedlink/pkg/wire"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 60 * time.Second
)

// Config holds connection settings for an OpenAI-compatible endpoint.
type Config struct {
	// BaseURL is the server root, e.g. "http://localhost:1234". A "/v1"
	// suffix is appended unless the URL already carries an API path.
	// Empty means the hosted OpenAI API.
	BaseURL string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// Timeout bounds each HTTP request. Zero means 60s.
	Timeout time.Duration
	// MaxRetries is the number of additional attempts for transient
	// transport failures and 5xx responses. Zero means no retry.
	MaxRetries int
	// Breaker optionally trips the circuit to the upstream after repeated
	// failures. Nil or disabled leaves every call to its own fate.
	Breaker *BreakerSettings
}

// BreakerSettings configures the optional upstream circuit breaker.
type BreakerSettings struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	ReadyToTripRatio float64
}

// Client is a reusable, stateless client for one endpoint. Safe for
// concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries int
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// New validates the configuration and builds a client. A malformed base URL
// is the only construction-time failure.
func New(cfg Config) (*Client, error) {
	baseURL := defaultBaseURL
	if cfg.BaseURL != "" {
		normalized, err := NormalizeBaseURL(cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		baseURL = normalized
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: timeout},
	}

	if cfg.Breaker != nil && cfg.Breaker.Enabled {
		c.breaker = newBreaker(cfg.Breaker)
	}

	return c, nil
}

// BaseURL returns the normalized endpoint root, including the API path.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateEmbeddings issues POST {base}/embeddings and decodes the response.
func (c *Client) CreateEmbeddings(ctx context.Context, req wire.EmbeddingRequest) (*wire.EmbeddingResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode embeddings request: %w", err)
	}

	data, err := c.doWithRetry(ctx, http.MethodPost, "/embeddings", body)
	if err != nil {
		return nil, err
	}

	var resp wire.EmbeddingResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode embeddings response: %w", err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("malformed embeddings response: missing data field")
	}

	return &resp, nil
}

// ListModels issues GET {base}/models. The returned flag reports whether the
// body carried a "data" key at all, which the credential self-test asserts
// separately from emptiness.
func (c *Client) ListModels(ctx context.Context) (*wire.ModelList, bool, error) {
	data, err := c.doWithRetry(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		return nil, false, err
	}

	var probe struct {
		Object string            `json:"object"`
		Data   *[]wire.ModelInfo `json:"data"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, false, fmt.Errorf("failed to decode models response: %w", err)
	}
	if probe.Data == nil {
		return &wire.ModelList{Object: probe.Object}, false, nil
	}

	return &wire.ModelList{Object: probe.Object, Data: *probe.Data}, true, nil
}

// doWithRetry runs one request, retrying transient failures up to
// MaxRetries. Attempts are strictly sequential.
func (c *Client) doWithRetry(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		data, err := c.do(ctx, method, path, body)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if !isRetriable(err) || attempt == c.maxRetries {
			return nil, err
		}
	}

	return nil, lastErr
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if c.breaker != nil {
		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.roundTrip(ctx, method, path, body)
		})
		if err != nil {
			return nil, err
		}
		return result.([]byte), nil
	}
	return c.roundTrip(ctx, method, path, body)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", c.baseURL+path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}

	return data, nil
}

func newBreaker(s *BreakerSettings) *gobreaker.CircuitBreaker {
	ratio := s.ReadyToTripRatio
	if ratio <= 0 {
		ratio = 0.6
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "embedlink-upstream",
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= ratio
		},
	})
}

// NormalizeBaseURL validates a configured endpoint URL and appends "/v1"
// unless an API path is already present.
func NormalizeBaseURL(baseURL string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" {
		return "", fmt.Errorf("baseURL must include scheme, e.g. http://localhost:1234")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("baseURL must use http:// or https:// scheme")
	}

	trimmed := strings.TrimRight(baseURL, "/")
	if hasAPIPath(trimmed) {
		return trimmed, nil
	}
	return trimmed + "/v1", nil
}

// hasAPIPath reports whether the URL already ends in a versioned API path.
func hasAPIPath(baseURL string) bool {
	return strings.HasSuffix(baseURL, "/v1") || strings.HasSuffix(baseURL, "/api")
}
