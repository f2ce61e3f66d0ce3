package dto

import (
	"strings"

	"github.com/soundprediction/embedlink/pkg/wire"
)

// EmbedRequest asks for one text to be embedded.
type EmbedRequest struct {
	Text string `json:"text" binding:"required"`
}

// Validate performs validation on EmbedRequest.
func (r *EmbedRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	if len(r.Text) > MaxTextLength {
		return ErrTextTooLong
	}
	return nil
}

// EmbedBatchRequest asks for a list of texts to be embedded. Blank entries
// are allowed; they come back as empty placeholder vectors.
type EmbedBatchRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

// Validate performs validation on EmbedBatchRequest.
func (r *EmbedBatchRequest) Validate() error {
	if len(r.Texts) == 0 {
		return ErrEmptyTexts
	}
	if len(r.Texts) > MaxTextsCount {
		return ErrTooManyTexts
	}
	for _, text := range r.Texts {
		if len(text) > MaxTextLength {
			return ErrTextTooLong
		}
	}
	return nil
}

// BatchItem is the outcome for one input position of a batch request.
// Failed items carry an error message instead of aborting the run.
type BatchItem struct {
	Index     int         `json:"index"`
	Embedding wire.Vector `json:"embedding"`
	Skipped   bool        `json:"skipped,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// EmbedBatchResponse is the response of the batch endpoint. Items are
// positionally aligned with the request texts.
type EmbedBatchResponse struct {
	Model          string      `json:"model"`
	EncodingFormat string      `json:"encoding_format"`
	Items          []BatchItem `json:"items"`
}

// ModelsResponse lists selectable models for a UI dropdown.
type ModelsResponse struct {
	Data []ModelOption `json:"data"`
}

// ModelOption is one dropdown entry.
type ModelOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
