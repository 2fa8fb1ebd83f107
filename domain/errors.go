package domain

import (
	"errors"
	"fmt"
)

// Closed set of failure kinds surfaced by the store, the completion
// gateway, and the chat service. Handlers map them to HTTP status codes
// with errors.Is; anything outside this set is a 500.
var (
	// ErrInvalidID means the supplied session ID is not a valid store
	// identifier. Checked before any storage access.
	ErrInvalidID = errors.New("invalid session ID format")

	// ErrNotFound means the ID is well-formed but no session matches it.
	ErrNotFound = errors.New("session not found")

	// ErrNoValidFields means a partial update carried nothing to change.
	ErrNoValidFields = errors.New("no valid updates provided")

	// ErrStoreUnavailable means the store connection could not be
	// established.
	ErrStoreUnavailable = errors.New("database connection not available")

	// ErrUpstreamTimeout means the completion API did not answer within
	// the request timeout.
	ErrUpstreamTimeout = errors.New("AI service request timed out")

	// ErrEmptyResponse means the completion API answered without content.
	ErrEmptyResponse = errors.New("no response content received from AI service")

	// ErrUpstream covers any other completion API failure. The underlying
	// detail is logged, never returned to the caller.
	ErrUpstream = errors.New("failed to generate AI response")
)

// ValidationError reports a request field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
