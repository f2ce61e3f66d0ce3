// Package dto defines the request and response shapes of the embedlink REST
// surface.
package dto

import "errors"

// Validation errors
var (
	ErrEmptyText     = errors.New("text cannot be empty")
	ErrEmptyTexts    = errors.New("texts cannot be empty")
	ErrTextTooLong   = errors.New("text exceeds maximum length (1MB)")
	ErrTooManyTexts  = errors.New("texts count exceeds maximum (1000)")
	ErrBadBatchSize  = errors.New("batch_size must be positive")
	ErrBadDimensions = errors.New("dimensions must be positive")
)

// Limits guard the REST surface against abuse.
const (
	MaxTextLength = 1024 * 1024 // 1MB
	MaxTextsCount = 1000
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
