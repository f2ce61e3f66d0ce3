package embedder

import (
	"context"
	"errors"
	"fmt"

	"github.com/soundprediction/embedlink/pkg/wire"
)

// DefaultBatchSize is the number of documents submitted per chunk when the
// caller does not configure one.
const DefaultBatchSize = 10

var (
	// ErrEmptyInput is returned by EmbedQuery for blank input text.
	ErrEmptyInput = errors.New("input text is empty")
	// ErrNoDocuments is returned by EmbedDocuments for a nil or empty list.
	ErrNoDocuments = errors.New("no documents to embed")
)

// Provider generates embeddings for workflow text inputs. Implementations
// are stateless across calls and safe for concurrent use.
type Provider interface {
	// EmbedQuery embeds a single text. Blank input is an error.
	EmbedQuery(ctx context.Context, text string) (wire.Vector, error)

	// EmbedDocuments embeds a list of texts. The result has exactly one
	// vector per input, in input order; blank inputs and failed items
	// yield empty placeholders.
	EmbedDocuments(ctx context.Context, texts []string) ([]wire.Vector, error)

	// Model returns the configured model name.
	Model() string

	// Dimensions returns the expected vector width, or 0 when unknown.
	Dimensions() int
}

// Options configures a provider.
type Options struct {
	// Model is the embedding model name. Required.
	Model string
	// EncodingFormat is "float" (default) or "base64". Base64 payloads are
	// returned verbatim, never decoded.
	EncodingFormat string
	// Dimensions requests a reduced output width when > 0.
	Dimensions int
	// User is an opaque end-user identifier forwarded to the server.
	User string
	// BatchSize caps the number of documents per chunk request. Zero means
	// DefaultBatchSize.
	BatchSize int
}

// ItemStatus reports the outcome for one input position of a batch.
type ItemStatus struct {
	// Index is the position in the original input list.
	Index int
	// Skipped is true when the input was blank and no request was made.
	Skipped bool
	// Err is non-nil when both the chunk request and the per-item fallback
	// failed for this position.
	Err error
}

// validate normalizes option defaults and rejects bad configuration.
func (o *Options) validate() error {
	if o.Model == "" {
		return fmt.Errorf("embedder options: model is required")
	}
	switch o.EncodingFormat {
	case "":
		o.EncodingFormat = wire.EncodingFloat
	case wire.EncodingFloat, wire.EncodingBase64:
	default:
		return fmt.Errorf("embedder options: unsupported encoding format %q", o.EncodingFormat)
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Dimensions < 0 {
		return fmt.Errorf("embedder options: dimensions must not be negative")
	}
	return nil
}
