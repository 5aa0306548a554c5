// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/styles"
)

// Placeholders shown in the message input.
const (
	PlaceholderReady        = "Ask me anything about onboarding..."
	PlaceholderUnconfigured = "Please set your API key to start chatting..."
	PlaceholderAwaiting     = "Waiting for a reply..."
)

// maxMessageLength caps a single chat message.
const maxMessageLength = 2000

// ChatInput wraps a bubbles textinput for composing chat messages.
// It refuses keystrokes while disabled.
type ChatInput struct {
	textinput  textinput.Model
	styles     *styles.Styles
	width      int
	configured bool
	awaiting   bool
}

// NewChatInput creates a new chat input component.
func NewChatInput(s *styles.Styles) *ChatInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = PlaceholderReady
	ti.Focus()
	ti.CharLimit = maxMessageLength
	ti.Width = 50

	return &ChatInput{
		textinput:  ti,
		styles:     s,
		width:      50,
		configured: true,
	}
}

// Init initialises the chat input.
func (c *ChatInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. Key presses are dropped while disabled.
func (c *ChatInput) Update(msg tea.Msg) (*ChatInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && c.Disabled() {
		return c, nil
	}
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	return c, cmd
}

// View renders the chat input.
func (c *ChatInput) View() string {
	label := c.styles.Title.Render("> ")
	if c.Disabled() {
		label = c.styles.Muted.Render("> ")
	}
	input := c.styles.InputField.Render(c.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// SetState records whether a provider is configured and whether a reply
// is pending, updating the placeholder to match.
func (c *ChatInput) SetState(configured, awaiting bool) {
	c.configured = configured
	c.awaiting = awaiting

	switch {
	case !configured:
		c.textinput.Placeholder = PlaceholderUnconfigured
	case awaiting:
		c.textinput.Placeholder = PlaceholderAwaiting
	default:
		c.textinput.Placeholder = PlaceholderReady
	}
}

// Disabled reports whether the input refuses new messages.
func (c *ChatInput) Disabled() bool {
	return !c.configured || c.awaiting
}

// Placeholder returns the current placeholder text.
func (c *ChatInput) Placeholder() string {
	return c.textinput.Placeholder
}

// Value returns the current input value.
func (c *ChatInput) Value() string {
	return c.textinput.Value()
}

// SetValue sets the input value.
func (c *ChatInput) SetValue(value string) {
	c.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (c *ChatInput) Focus() tea.Cmd {
	return c.textinput.Focus()
}

// Blur removes focus from the input.
func (c *ChatInput) Blur() {
	c.textinput.Blur()
}

// Focused returns whether the input is focused.
func (c *ChatInput) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the width of the input.
func (c *ChatInput) SetWidth(width int) {
	c.width = width
	// Account for label, border and padding
	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	c.textinput.Width = inputWidth
}

// Width returns the current width.
func (c *ChatInput) Width() int {
	return c.width
}

// Reset clears the input.
func (c *ChatInput) Reset() {
	c.textinput.Reset()
}
