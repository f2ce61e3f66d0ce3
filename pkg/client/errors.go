package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError is a non-success HTTP response from the upstream server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}

// newAPIError extracts the error message from an OpenAI-style error body,
// falling back to the raw body when it does not parse.
func newAPIError(status int, body []byte) *APIError {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		message = parsed.Error.Message
	}
	if message == "" {
		message = "no error detail"
	}
	return &APIError{StatusCode: status, Message: message}
}

// isRetriable reports whether an error is worth another attempt: transport
// failures, 429 and 5xx statuses.
func isRetriable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}

	errStr := strings.ToLower(err.Error())
	for _, candidate := range []string{
		"timeout",
		"connection refused",
		"connection reset",
		"no such host",
		"eof",
	} {
		if strings.Contains(errStr, candidate) {
			return true
		}
	}
	return false
}
