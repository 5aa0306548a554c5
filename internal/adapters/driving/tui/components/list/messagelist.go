// Package list provides the chat transcript component for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/onboard/internal/core/domain"
)

// TypingIndicator is shown below the transcript while a reply is pending.
const TypingIndicator = "Assistant is typing..."

// MessageList displays the chat transcript as labelled bubbles, newest at
// the bottom. Assistant messages are rendered as markdown.
type MessageList struct {
	messages []domain.Message
	styles   *styles.Styles
	width    int
	height   int

	// offset counts lines scrolled up from the bottom.
	offset  int
	pending bool

	renderer      *glamour.TermRenderer
	rendererWidth int
	cache         map[int]string
	cacheWidth    int
}

// NewMessageList creates a new transcript component.
func NewMessageList(s *styles.Styles) *MessageList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &MessageList{
		styles: s,
		width:  80,
		height: 20,
		cache:  make(map[int]string),
	}
}

// Init initialises the message list.
func (l *MessageList) Init() tea.Cmd {
	return nil
}

// Update handles scrolling keys.
func (l *MessageList) Update(msg tea.Msg) (*MessageList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.ScrollUp(1)
		case "down", "j":
			l.ScrollDown(1)
		case "pgup", "ctrl+u":
			l.ScrollUp(l.height)
		case "pgdown", "ctrl+d":
			l.ScrollDown(l.height)
		}
	}
	return l, nil
}

// View renders the visible part of the transcript.
func (l *MessageList) View() string {
	lines := l.lines()
	if len(lines) == 0 {
		return l.styles.Muted.Render("No messages yet")
	}

	end := len(lines) - l.offset
	start := end - l.height
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:end], "\n")
}

// lines renders every message and splits the result into lines.
func (l *MessageList) lines() []string {
	if l.cacheWidth != l.width {
		l.cache = make(map[int]string)
		l.cacheWidth = l.width
	}

	var out []string
	for i := range l.messages {
		id := l.messages[i].ID
		rendered, ok := l.cache[id]
		if !ok {
			rendered = l.renderMessage(&l.messages[i])
			// Messages not yet in the transcript have no ID.
			if id > 0 {
				l.cache[id] = rendered
			}
		}
		out = append(out, strings.Split(rendered, "\n")...)
		out = append(out, "")
	}
	if l.pending {
		out = append(out, l.styles.Muted.Render(TypingIndicator))
	}
	return out
}

// renderMessage formats one message as a label and a bubble.
func (l *MessageList) renderMessage(msg *domain.Message) string {
	bubbleWidth := l.width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}
	// Border and padding take four columns.
	contentWidth := bubbleWidth - 4

	stamp := msg.Timestamp.Format("15:04")
	if msg.Sender == domain.SenderUser {
		label := l.styles.UserLabel.Render("You") + " " + l.styles.Muted.Render(stamp)
		bubble := l.styles.UserBubble.Width(bubbleWidth).Render(msg.Text)
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.PlaceHorizontal(l.width, lipgloss.Right, block)
	}

	label := l.styles.AssistantLabel.Render("Assistant") + " " + l.styles.Muted.Render(stamp)
	bubble := l.styles.AssistantBubble.Width(bubbleWidth).Render(l.renderMarkdown(msg.Text, contentWidth))
	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// renderMarkdown renders text through glamour, falling back to the raw
// text if the renderer fails.
func (l *MessageList) renderMarkdown(text string, width int) string {
	if l.renderer == nil || l.rendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithColorProfile(lipgloss.ColorProfile()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		l.renderer = r
		l.rendererWidth = width
	}

	out, err := l.renderer.Render(text)
	if err != nil {
		return text
	}
	return trimBlankLines(out)
}

// trimBlankLines drops the blank margin lines glamour puts around a document.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(ansi.Strip(lines[start])) == "" {
		start++
	}
	for end > start && strings.TrimSpace(ansi.Strip(lines[end-1])) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// SetMessages replaces the transcript and scrolls to the newest message.
func (l *MessageList) SetMessages(messages []domain.Message) {
	if len(messages) == 0 || (len(l.messages) > 0 && messages[0].ID != l.messages[0].ID) {
		l.cache = make(map[int]string)
	}
	l.messages = messages
	l.offset = 0
}

// Append adds one message and scrolls to it.
func (l *MessageList) Append(msg domain.Message) {
	l.messages = append(l.messages, msg)
	l.offset = 0
}

// Messages returns the displayed messages.
func (l *MessageList) Messages() []domain.Message {
	return l.messages
}

// SetPending shows or hides the typing indicator.
func (l *MessageList) SetPending(pending bool) {
	l.pending = pending
}

// Pending reports whether the typing indicator is shown.
func (l *MessageList) Pending() bool {
	return l.pending
}

// ScrollUp moves the view n lines towards older messages.
func (l *MessageList) ScrollUp(n int) {
	maxOffset := len(l.lines()) - l.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	l.offset += n
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
}

// ScrollDown moves the view n lines towards the newest message.
func (l *MessageList) ScrollDown(n int) {
	l.offset -= n
	if l.offset < 0 {
		l.offset = 0
	}
}

// Offset returns how many lines the view is scrolled up from the bottom.
func (l *MessageList) Offset() int {
	return l.offset
}

// SetDimensions sets the component dimensions.
func (l *MessageList) SetDimensions(width, height int) {
	l.width = width
	if height < 1 {
		height = 1
	}
	l.height = height
}

// Width returns the current width.
func (l *MessageList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *MessageList) Height() int {
	return l.height
}

// Count returns the number of messages.
func (l *MessageList) Count() int {
	return len(l.messages)
}
