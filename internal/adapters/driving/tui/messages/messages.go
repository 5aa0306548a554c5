// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/onboard/internal/core/domain"
)

// Pane identifies which pane has keyboard focus.
type Pane int

const (
	// PaneChat is the transcript and message input.
	PaneChat Pane = iota
	// PaneCitation is the citation viewer.
	PaneCitation
)

// String returns the string representation of the pane.
func (p Pane) String() string {
	switch p {
	case PaneChat:
		return "chat"
	case PaneCitation:
		return "citation"
	default:
		return "unknown"
	}
}

// MessageSubmitted is sent when the user sends a chat message.
type MessageSubmitted struct {
	Text string
}

// TurnCompleted carries the outcome of one conversation turn.
// Err is set when the turn was rejected outright; completion failures
// arrive in Result.Err.
type TurnCompleted struct {
	Generation int
	Result     *domain.TurnResult
	Err        error
}

// CitationRevealed fires after the reveal delay for a resolved citation.
type CitationRevealed struct {
	Generation int
	Citation   domain.CitationReference
}

// CitationLoaded carries a rendered, highlighted reference document.
// Load identifies the open it answers; only the latest open is shown.
type CitationLoaded struct {
	Generation int
	Load       int
	Document   *domain.HighlightedDocument
	Err        error
}

// CitationSettled fires shortly after a citation loads so the viewer can
// recentre once its size is final.
type CitationSettled struct {
	Generation int
}

// CitationClosed signals the citation viewer was closed.
type CitationClosed struct{}

// ConversationReset signals the transcript was cleared.
type ConversationReset struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// ErrorDismissed signals the error banner was dismissed.
type ErrorDismissed struct{}

// Quit signals the application should exit.
type Quit struct{}
