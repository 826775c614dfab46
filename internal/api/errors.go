package api

import "fmt"

// APIError is a non-2xx API response. It carries the original status code,
// a human-readable message, and the parsed error body when one was present.
type APIError struct {
	StatusCode int
	Message    string
	Body       map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// RateLimitError is a 429 that survived every allowed retry. Retryable in
// principle, but the attempt budget is exhausted.
type RateLimitError struct {
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited after %d attempts; wait and try again", e.Attempts)
}
