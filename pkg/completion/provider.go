// Package completion talks to the external text-completion service. The
// Gateway owns prompt assembly, retry and error classification; Provider is
// the transport underneath it.
package completion

import (
	"context"
	"errors"
	"fmt"
)

// Message represents a chat message in a provider-agnostic format.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Provider defines the contract for any completion backend.
type Provider interface {
	// Chat sends a chat history to the model and returns the response text.
	Chat(ctx context.Context, messages []Message) (string, error)
}

// StatusError is returned by a Provider when the service answered with a
// non-success HTTP status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion api error (status %d): %s", e.StatusCode, e.Body)
}

// Class buckets provider failures for the retry policy.
type Class int

const (
	ClassSuccess Class = iota
	ClassOverloaded
	ClassRateLimited
	ClassNetwork
	ClassFailure
)

// Classify maps a provider error to its failure class. A nil error is
// ClassSuccess; an error without a status code is a network-level failure.
func Classify(err error) Class {
	if err == nil {
		return ClassSuccess
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return ClassNetwork
	}
	switch {
	case statusErr.StatusCode == 503 || statusErr.StatusCode == 502 || statusErr.StatusCode == 504:
		return ClassOverloaded
	case statusErr.StatusCode == 429:
		return ClassRateLimited
	default:
		return ClassFailure
	}
}
