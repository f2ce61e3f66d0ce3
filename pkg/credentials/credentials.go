// Package credentials defines the credential shape for an OpenAI-compatible
// endpoint and its connectivity self-test.
//
// A credential is created and stored by the embedding host; this package
// treats it as a read-only value object.
package credentials

import (
	"context"
	"fmt"

	"github.com/soundprediction/embedlink/pkg/client"
)

// Credential holds the two configuration values needed to reach an endpoint.
type Credential struct {
	// BaseURL is the endpoint root, e.g. "http://localhost:1234".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
	// APIKey is optional; local model runners usually run without one.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// Field describes one credential input for a host UI.
type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Secret      bool   `json:"secret"`
	Default     string `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// Descriptor is the static schema of the credential type.
type Descriptor struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Fields      []Field `json:"fields"`
}

// Describe returns the credential type descriptor.
func Describe() Descriptor {
	return Descriptor{
		Name:        "openAiCompatibleApi",
		DisplayName: "OpenAI-compatible API",
		Fields: []Field{
			{
				Name:        "base_url",
				Label:       "Base URL",
				Type:        "string",
				Required:    true,
				Default:     "http://localhost:1234",
				Description: "Root URL of the embeddings server",
			},
			{
				Name:        "api_key",
				Label:       "API Key",
				Type:        "string",
				Secret:      true,
				Description: "Bearer token, omitted when empty",
			},
		},
	}
}

// Test performs the connectivity self-test: a GET against the models path,
// asserting the response body carries a data array (possibly empty). There
// is no retry.
func (c Credential) Test(ctx context.Context) error {
	cl, err := client.New(client.Config{BaseURL: c.BaseURL, APIKey: c.APIKey})
	if err != nil {
		return fmt.Errorf("invalid credential: %w", err)
	}

	_, hasData, err := cl.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	if !hasData {
		return fmt.Errorf("connection test failed: models response has no data field")
	}

	return nil
}
