package driving

import (
	"context"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// ChatService runs one conversation: a transcript and an Idle/Awaiting gate.
type ChatService interface {
	// Submit runs one turn. While another turn is awaiting its completion
	// it returns domain.ErrTurnInProgress without touching the transcript.
	// Blank input returns domain.ErrEmptyMessage. Completion failures are
	// reported in TurnResult.Err, not as the returned error.
	Submit(ctx context.Context, text string) (*domain.TurnResult, error)

	// Transcript returns a copy of the messages so far.
	Transcript() []domain.Message

	// Awaiting reports whether a turn is in flight.
	Awaiting() bool

	// Configured reports whether a completion provider is available.
	Configured() bool

	// ModelName returns the completion model, or empty when unconfigured.
	ModelName() string

	// Reset clears the transcript back to the greeting.
	Reset()
}
