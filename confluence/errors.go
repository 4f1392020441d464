package confluence

import "fmt"

// APIError is a non-2xx response from the Confluence API.
type APIError struct {
	StatusCode int
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("confluence API error: %s returned %d: %s", e.Path, e.StatusCode, e.Message)
}

// RateLimitError means the local rate limiter refused a request before it
// went out.
type RateLimitError struct {
	Operation string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s", e.Operation)
}
