// Package chat provides the conversation view: the transcript above a
// message input.
package chat

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/onboard/internal/core/domain"
)

// inputHeight is the rendered height of the bordered input.
const inputHeight = 3

// View is the chat view.
type View struct {
	styles     *styles.Styles
	transcript *list.MessageList
	input      *input.ChatInput
	width      int
	height     int
	now        func() time.Time
}

// NewView creates a new chat view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		transcript: list.NewMessageList(s),
		input:      input.NewChatInput(s),
		width:      80,
		height:     24,
		now:        time.Now,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view. Enter submits the input;
// arrow and page keys scroll the transcript; everything else types.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch keyMsg.String() {
	case "enter":
		return v, v.submit()
	case "up", "down", "pgup", "pgdown":
		v.transcript, _ = v.transcript.Update(keyMsg)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(keyMsg)
	return v, cmd
}

// submit emits MessageSubmitted for non-blank input and clears it.
func (v *View) submit() tea.Cmd {
	if v.input.Disabled() {
		return nil
	}
	text := strings.TrimSpace(v.input.Value())
	if text == "" {
		return nil
	}
	v.input.Reset()
	return func() tea.Msg {
		return messages.MessageSubmitted{Text: text}
	}
}

// View renders the transcript and the input.
func (v *View) View() string {
	return v.transcript.View() + "\n" + v.input.View()
}

// SetTranscript replaces the displayed messages.
func (v *View) SetTranscript(msgs []domain.Message) {
	v.transcript.SetMessages(msgs)
}

// AppendPending shows the user's message before the service confirms it.
func (v *View) AppendPending(text string) {
	v.transcript.Append(domain.Message{
		Text:      text,
		Sender:    domain.SenderUser,
		Timestamp: v.now(),
	})
}

// SetState updates the input and typing indicator.
func (v *View) SetState(configured, awaiting bool) {
	v.input.SetState(configured, awaiting)
	v.transcript.SetPending(awaiting)
}

// Focus gives the input keyboard focus.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// Blur removes keyboard focus from the input.
func (v *View) Blur() {
	v.input.Blur()
}

// InputValue returns the text being composed.
func (v *View) InputValue() string {
	return v.input.Value()
}

// Placeholder returns the input placeholder.
func (v *View) Placeholder() string {
	return v.input.Placeholder()
}

// InputDisabled reports whether the input refuses new messages.
func (v *View) InputDisabled() bool {
	return v.input.Disabled()
}

// Messages returns the displayed messages.
func (v *View) Messages() []domain.Message {
	return v.transcript.Messages()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.transcript.SetDimensions(width, height-inputHeight-1)
	v.input.SetWidth(width)
}
