package ports

import (
	"context"

	"github.com/baskit-app/baskit/internal/domain"
)

// IntentSource defines the client port for the external language model that
// turns a free-text utterance into tool calls plus a confidence score.
// Implemented by the intent adapter; called by the assistant service.
//
// Transient upstream failures (rate limiting, timeouts) are retried inside
// the adapter with bounded exponential backoff before surfacing as
// domain.ErrUpstream. Validation outcomes are never retried.
type IntentSource interface {
	// Interpret returns the intent source's reading of one utterance.
	// Returns a domain.ErrUpstream error on rate-limit/timeout/auth
	// failures (each with a distinct user-facing message) and
	// domain.ErrValidation when the source cannot produce tool calls.
	Interpret(ctx context.Context, text string) (*domain.Interpretation, error)
}
