// Package oracle talks to the external reasoning service used for
// claim extraction and verdict assessment. The oracle is an untrusted,
// fallible black box: every call carries a bounded timeout, failures
// are reported as errors for the caller to degrade on, and nothing in
// this package retries.
package oracle

import (
	"context"
)

// Request is a single completion request against the oracle.
type Request struct {
	// System is the system instruction framing the task.
	System string

	// Prompt is the user-role payload.
	Prompt string

	// MaxTokens caps the reply length; 0 uses the configured default.
	MaxTokens int
}

// Client is implemented by each oracle provider.
type Client interface {
	// Name returns the provider name.
	Name() string

	// Complete sends one prompt and returns the raw reply text.
	Complete(ctx context.Context, req Request) (string, error)
}
