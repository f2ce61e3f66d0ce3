package embedder

import (
	"context"
	"fmt"
	"strings"

	"github.com/soundprediction/embedlink/pkg/client"
	"github.com/soundprediction/embedlink/pkg/wire"
)

// modelDimensions maps well-known embedding models to their native output
// width. Unknown models report 0 unless Options.Dimensions is set.
var modelDimensions = map[string]int{
	"text-embedding-ada-002":          1536,
	"text-embedding-3-small":          1536,
	"text-embedding-3-large":          3072,
	"nomic-embed-text":                768,
	"text-embedding-nomic-embed-text": 768,
	"all-MiniLM-L6-v2":                384,
}

// OpenAICompatible embeds text through the embeddings endpoint of an
// OpenAI-compatible server.
type OpenAICompatible struct {
	client *client.Client
	opts   Options
}

var _ Provider = (*OpenAICompatible)(nil)

// New validates the options and builds a provider on top of an existing
// endpoint client.
func New(cl *client.Client, opts Options) (*OpenAICompatible, error) {
	if cl == nil {
		return nil, fmt.Errorf("embedder: client is required")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &OpenAICompatible{client: cl, opts: opts}, nil
}

// Model returns the configured model name.
func (p *OpenAICompatible) Model() string {
	return p.opts.Model
}

// EncodingFormat returns the configured wire representation.
func (p *OpenAICompatible) EncodingFormat() string {
	return p.opts.EncodingFormat
}

// Dimensions returns the configured or model-native vector width, or 0 when
// unknown.
func (p *OpenAICompatible) Dimensions() int {
	if p.opts.Dimensions > 0 {
		return p.opts.Dimensions
	}
	return modelDimensions[p.opts.Model]
}

// EmbedQuery embeds a single text with one request and returns the first
// embedding of the response. Transport and server errors are wrapped and
// returned; there is no retry at this layer.
func (p *OpenAICompatible) EmbedQuery(ctx context.Context, text string) (wire.Vector, error) {
	if strings.TrimSpace(text) == "" {
		return wire.Vector{}, ErrEmptyInput
	}

	resp, err := p.client.CreateEmbeddings(ctx, p.request(text))
	if err != nil {
		return wire.Vector{}, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(resp.Data) == 0 {
		return wire.Vector{}, fmt.Errorf("embeddings response contained no data")
	}

	return resp.Data[0].Embedding, nil
}

// EmbedDocuments embeds a list of texts, degrading per item instead of
// failing the whole set. See EmbedDocumentsWithReport for per-item outcomes.
func (p *OpenAICompatible) EmbedDocuments(ctx context.Context, texts []string) ([]wire.Vector, error) {
	vectors, _, err := p.EmbedDocumentsWithReport(ctx, texts)
	return vectors, err
}

// EmbedDocumentsWithReport embeds a list of texts and reports the outcome of
// every position. The vector slice is always positionally aligned with the
// input: blank inputs and failed items hold empty placeholders.
//
// The statuses list only the positions that were skipped or failed; an empty
// report means every input produced an embedding.
//
// The input is partitioned into chunks of at most BatchSize items. Each
// chunk is submitted as one request; if that request fails, each item of the
// chunk is retried individually. Once the first chunk has been attempted the
// operation no longer returns an error.
func (p *OpenAICompatible) EmbedDocumentsWithReport(ctx context.Context, texts []string) ([]wire.Vector, []ItemStatus, error) {
	if len(texts) == 0 {
		return nil, nil, ErrNoDocuments
	}

	batch := p.opts.BatchSize
	vectors := make([]wire.Vector, 0, len(texts))
	var statuses []ItemStatus

	for start := 0; start < len(texts); start += batch {
		end := start + batch
		if end > len(texts) {
			end = len(texts)
		}

		chunkVectors, chunkStatuses := p.embedChunk(ctx, texts[start:end], start)
		vectors = append(vectors, chunkVectors...)
		statuses = append(statuses, chunkStatuses...)
	}

	return vectors, statuses, nil
}

// embedChunk embeds one chunk, falling back to per-item requests when the
// chunk request fails. offset is the chunk's position in the overall input,
// used only for status reporting.
func (p *OpenAICompatible) embedChunk(ctx context.Context, chunk []string, offset int) ([]wire.Vector, []ItemStatus) {
	vectors := make([]wire.Vector, len(chunk))
	var statuses []ItemStatus

	blank := make([]bool, len(chunk))
	valid := make([]string, 0, len(chunk))
	for i, text := range chunk {
		if strings.TrimSpace(text) == "" {
			blank[i] = true
			statuses = append(statuses, ItemStatus{Index: offset + i, Skipped: true})
			continue
		}
		valid = append(valid, text)
	}

	// A chunk of only blanks costs no request at all.
	if len(valid) == 0 {
		return vectors, statuses
	}

	resp, err := p.client.CreateEmbeddings(ctx, p.request(valid))
	if err == nil && len(resp.Data) != len(valid) {
		err = fmt.Errorf("embeddings response returned %d vectors for %d inputs", len(resp.Data), len(valid))
	}
	if err == nil {
		// Response order matches submitted order; walk the chunk and
		// consume one embedding per non-blank item.
		next := 0
		for i := range chunk {
			if blank[i] {
				continue
			}
			vectors[i] = resp.Data[next].Embedding
			next++
		}
		return vectors, statuses
	}

	// Chunk request failed: degrade to one request per item, still strictly
	// sequential. Items that fail again keep their empty placeholder.
	for i, text := range chunk {
		if blank[i] {
			continue
		}
		if ctx.Err() != nil {
			statuses = append(statuses, ItemStatus{Index: offset + i, Err: ctx.Err()})
			continue
		}

		itemResp, itemErr := p.client.CreateEmbeddings(ctx, p.request(text))
		if itemErr == nil && len(itemResp.Data) == 0 {
			itemErr = fmt.Errorf("embeddings response contained no data")
		}
		if itemErr != nil {
			statuses = append(statuses, ItemStatus{Index: offset + i, Err: itemErr})
			continue
		}
		vectors[i] = itemResp.Data[0].Embedding
	}

	return vectors, statuses
}

// request builds the wire request for a string or []string input.
func (p *OpenAICompatible) request(input any) wire.EmbeddingRequest {
	req := wire.EmbeddingRequest{
		Input:          input,
		Model:          p.opts.Model,
		EncodingFormat: p.opts.EncodingFormat,
		User:           p.opts.User,
	}
	if p.opts.Dimensions > 0 {
		dims := p.opts.Dimensions
		req.Dimensions = &dims
	}
	return req
}
