package embedlink

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soundprediction/embedlink/pkg/client"
	"github.com/soundprediction/embedlink/pkg/credentials"
	"github.com/soundprediction/embedlink/pkg/embedder"
	"github.com/soundprediction/embedlink/pkg/logger"
	"github.com/soundprediction/embedlink/pkg/models"
	"github.com/soundprediction/embedlink/pkg/similarity"
	"github.com/soundprediction/embedlink/pkg/wire"
)

// Config holds everything needed to build a Client. Credential and
// Embedding.Model are required; everything else has sensible defaults.
type Config struct {
	// Credential identifies the upstream endpoint.
	Credential credentials.Credential
	// Embedding holds model and batching options.
	Embedding embedder.Options
	// Timeout bounds each upstream request. Zero means the client default.
	Timeout time.Duration
	// MaxRetries is forwarded to the HTTP client for transient transport
	// failures. Zero means no retry.
	MaxRetries int
	// Breaker optionally enables a circuit breaker on the upstream.
	Breaker *client.BreakerSettings
	// Logger defaults to a text logger on stderr.
	Logger *slog.Logger
}

// Client is the embedding capability object handed to a consumer: it embeds
// queries and documents, lists models, and tests connectivity. All methods
// are stateless across calls and safe for concurrent use.
type Client struct {
	provider   *embedder.OpenAICompatible
	lister     *models.Lister
	credential credentials.Credential
	logger     *slog.Logger
}

// New validates the configuration and builds a client. Bad configuration is
// the only failure path here; no network traffic happens until a method is
// called.
func New(cfg Config) (*Client, error) {
	log := cfg.Logger
	if log == nil {
		log = logger.NewDefaultLogger(slog.LevelInfo)
	}

	httpClient, err := client.New(client.Config{
		BaseURL:    cfg.Credential.BaseURL,
		APIKey:     cfg.Credential.APIKey,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		Breaker:    cfg.Breaker,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create endpoint client: %w", err)
	}

	provider, err := embedder.New(httpClient, cfg.Embedding)
	if err != nil {
		return nil, err
	}

	lister, err := models.NewLister(cfg.Credential.BaseURL, cfg.Credential.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create model lister: %w", err)
	}

	return &Client{
		provider:   provider,
		lister:     lister,
		credential: cfg.Credential,
		logger:     log,
	}, nil
}

// Provider exposes the embedding provider for consumers that only need the
// Provider interface (e.g. a vector store).
func (c *Client) Provider() embedder.Provider {
	return c.provider
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.provider.Model()
}

// EncodingFormat returns the configured wire representation.
func (c *Client) EncodingFormat() string {
	return c.provider.EncodingFormat()
}

// EmbedQuery embeds a single text.
func (c *Client) EmbedQuery(ctx context.Context, text string) (wire.Vector, error) {
	return c.provider.EmbedQuery(ctx, text)
}

// EmbedDocuments embeds a list of texts with chunking and per-item
// degradation. The result is positionally aligned with the input.
func (c *Client) EmbedDocuments(ctx context.Context, texts []string) ([]wire.Vector, error) {
	vectors, statuses, err := c.provider.EmbedDocumentsWithReport(ctx, texts)
	if err != nil {
		return nil, err
	}
	for _, s := range statuses {
		if s.Err != nil {
			c.logger.Warn("document embedding degraded to placeholder",
				"index", s.Index, "error", s.Err)
		}
	}
	return vectors, nil
}

// EmbedDocumentsWithReport embeds a list of texts and additionally reports
// skipped and failed positions.
func (c *Client) EmbedDocumentsWithReport(ctx context.Context, texts []string) ([]wire.Vector, []embedder.ItemStatus, error) {
	return c.provider.EmbedDocumentsWithReport(ctx, texts)
}

// Models lists the endpoint's models as UI options, in server order.
func (c *Client) Models(ctx context.Context) ([]models.Option, error) {
	return c.lister.List(ctx)
}

// TestConnection runs the credential connectivity self-test.
func (c *Client) TestConnection(ctx context.Context) error {
	return c.credential.Test(ctx)
}

// Search embeds the query and the documents, then returns the top k
// documents by cosine similarity. Documents whose embedding failed or was
// skipped do not appear in the result.
func (c *Client) Search(ctx context.Context, query string, docs []string, k int) ([]similarity.Match, error) {
	queryVector, err := c.provider.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	docVectors, err := c.EmbedDocuments(ctx, docs)
	if err != nil {
		return nil, err
	}

	return similarity.Rank(queryVector, docVectors, k), nil
}

// EmbedText embeds one text and wraps it in the direct-output Result shape.
func (c *Client) EmbedText(ctx context.Context, text string) (*Result, error) {
	vector, err := c.provider.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	return &Result{
		Model: c.provider.Model(),
		Data: []wire.EmbeddingData{
			{Object: "embedding", Index: 0, Embedding: vector},
		},
		InputText:           text,
		ProcessingMode:      ProcessingModeSingle,
		EncodingFormat:      c.provider.EncodingFormat(),
		EmbeddingDimensions: resultDimensions(vector, c.provider),
	}, nil
}

func resultDimensions(v wire.Vector, p *embedder.OpenAICompatible) int {
	if v.Len() > 0 {
		return v.Len()
	}
	return p.Dimensions()
}
