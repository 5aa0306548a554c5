package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an upload whose MIME type no normaliser accepts.
	ErrUnsupportedType = errors.New("unsupported type")

	// Conversation Errors.

	// ErrEmptyMessage indicates a submission with no non-whitespace text.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrTurnInProgress indicates a submission arrived while a turn is awaiting
	// its completion. The submission is rejected, not queued.
	ErrTurnInProgress = errors.New("a response is already being generated")

	// ErrLLMUnavailable indicates no completion provider is configured.
	// The assistant answers with a canned message instead of calling out.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrCompletionFailed indicates the completion provider returned an error,
	// a non-2xx status or an unreadable payload.
	ErrCompletionFailed = errors.New("completion failed")

	// ErrRateLimited indicates a caller exceeded its request budget.
	ErrRateLimited = errors.New("rate limited")

	// Citation Errors.

	// ErrReferenceOutOfRange indicates a document index outside the reference library.
	ErrReferenceOutOfRange = errors.New("reference index out of range")
)
