package list

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

func testMessages() []domain.Message {
	ts := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	return []domain.Message{
		{ID: 1, Sender: domain.SenderAssistant, Text: "Hey! Ask me **anything**.", Timestamp: ts},
		{ID: 2, Sender: domain.SenderUser, Text: "Where is the wiki?", Timestamp: ts},
		{ID: 3, Sender: domain.SenderAssistant, Text: "It's on Confluence.", Timestamp: ts},
	}
}

func TestNewMessageList(t *testing.T) {
	l := NewMessageList(nil)

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
	assert.Equal(t, 0, l.Count())
	assert.Equal(t, 80, l.Width())
	assert.Nil(t, l.Init())
}

func TestMessageList_EmptyView(t *testing.T) {
	l := NewMessageList(nil)

	assert.Contains(t, l.View(), "No messages yet")
}

func TestMessageList_RendersBubbles(t *testing.T) {
	l := NewMessageList(nil)
	l.SetDimensions(80, 100)
	l.SetMessages(testMessages())

	view := ansi.Strip(l.View())

	assert.Contains(t, view, "You")
	assert.Contains(t, view, "Assistant")
	assert.Contains(t, view, "Where is the wiki?")
	assert.Contains(t, view, "Confluence")
	assert.Contains(t, view, "09:30")
	// Markdown emphasis markers are rendered away.
	assert.Contains(t, view, "anything")
	assert.NotContains(t, view, "**anything**")
}

func TestMessageList_TypingIndicator(t *testing.T) {
	l := NewMessageList(nil)
	l.SetDimensions(80, 100)
	l.SetMessages(testMessages())

	l.SetPending(true)
	assert.True(t, l.Pending())
	assert.Contains(t, l.View(), TypingIndicator)

	l.SetPending(false)
	assert.NotContains(t, l.View(), TypingIndicator)
}

func TestMessageList_ShowsNewestWhenShort(t *testing.T) {
	l := NewMessageList(nil)
	l.SetDimensions(80, 3)
	l.SetMessages(testMessages())

	view := ansi.Strip(l.View())

	assert.NotContains(t, view, "Where is the wiki?")
	assert.LessOrEqual(t, len(splitLines(view)), 3)
}

func TestMessageList_Scrolling(t *testing.T) {
	l := NewMessageList(nil)
	l.SetDimensions(80, 3)
	l.SetMessages(testMessages())

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, l.Offset())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, l.Offset())

	l.ScrollDown(5)
	assert.Equal(t, 0, l.Offset())

	l.ScrollUp(10000)
	total := len(l.lines())
	assert.Equal(t, total-3, l.Offset())
}

func TestMessageList_AppendResetsScroll(t *testing.T) {
	l := NewMessageList(nil)
	l.SetDimensions(80, 3)
	l.SetMessages(testMessages())
	l.ScrollUp(2)

	l.Append(domain.Message{Sender: domain.SenderUser, Text: "next"})

	assert.Equal(t, 0, l.Offset())
	assert.Equal(t, 4, l.Count())
}

func TestMessageList_ProvisionalMessagesAreNotCached(t *testing.T) {
	l := NewMessageList(nil)
	l.SetDimensions(80, 100)

	l.Append(domain.Message{Sender: domain.SenderUser, Text: "first draft"})
	_ = l.View()
	l.SetMessages(nil)
	l.Append(domain.Message{Sender: domain.SenderUser, Text: "second draft"})

	view := l.View()
	assert.Contains(t, view, "second draft")
	assert.NotContains(t, view, "first draft")
}

func TestMessageList_SetDimensionsClampsHeight(t *testing.T) {
	l := NewMessageList(nil)

	l.SetDimensions(40, 0)

	assert.Equal(t, 40, l.Width())
	assert.Equal(t, 1, l.Height())
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func TestTrimBlankLines(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", trimBlankLines("\n   \n  a\n\n  b\n  \n"))
	assert.Equal(t, "", trimBlankLines("\n\n"))
}
