// Package models lists the models advertised by an OpenAI-compatible
// endpoint and projects them into dropdown options for a host UI.
package models

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/soundprediction/embedlink/pkg/client"
)

// Option is one selectable model entry, shaped for a UI dropdown.
type Option struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Lister fetches the model list from one endpoint.
type Lister struct {
	client *openai.Client
}

// NewLister builds a lister for the given endpoint. An empty base URL means
// the hosted OpenAI API.
func NewLister(baseURL, apiKey string) (*Lister, error) {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		normalized, err := client.NormalizeBaseURL(baseURL)
		if err != nil {
			return nil, err
		}
		cfg.BaseURL = normalized
	}

	return &Lister{client: openai.NewClientWithConfig(cfg)}, nil
}

// List returns the server's models as name/value pairs, in the order the
// server returned them. On failure the result is empty, never partial.
func (l *Lister) List(ctx context.Context) ([]Option, error) {
	list, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models from endpoint: %w", err)
	}

	options := make([]Option, 0, len(list.Models))
	for _, m := range list.Models {
		options = append(options, Option{Name: m.ID, Value: m.ID})
	}

	return options, nil
}
