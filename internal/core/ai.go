package core

import (
	"context"

	"github.com/markdave123-py/reflectcoach/internal/models"
)

// ReasoningEngine produces the assistant reply for a full transcript.
// Failures to reach or understand the engine satisfy errors.Is(err, ErrEngineUnavailable).
// Ready resolves the credential without calling the engine and returns
// ErrMissingCredential when none is configured.
type ReasoningEngine interface {
	Ready(ctx context.Context) error
	Complete(ctx context.Context, transcript []models.ChatMessage) (string, error)
}

// CredentialProvider yields the engine API key, or ErrMissingCredential.
type CredentialProvider interface {
	APIKey(ctx context.Context) (string, error)
}
