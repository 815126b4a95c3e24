package spi

import (
	"context"
)

// Generator is the single capability the conversation engine needs from a
// model backend: turn a prompt into one utterance.
//
// Implementations do not retry and do not interpret failures; transport
// errors, rate limits, timeouts and empty responses are all returned as-is
// for the scheduler to classify.
type Generator interface {
	// Name returns the agent display name recorded on produced messages.
	Name() string
	// Generate produces one utterance for the given prompt. The context
	// carries both cancellation and the per-call timeout.
	Generate(ctx context.Context, prompt string) (string, error)
}
