package chat

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/onboard/internal/core/domain"
)

func typeText(v *View, text string) {
	for _, r := range text {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.Init())
	assert.Empty(t, v.Messages())
	assert.Equal(t, input.PlaceholderReady, v.Placeholder())
}

func TestView_EnterSubmitsTrimmedText(t *testing.T) {
	v := NewView(nil)
	typeText(v, "  where is the wiki?  ")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.MessageSubmitted{Text: "where is the wiki?"}, cmd())
	assert.Equal(t, "", v.InputValue())
}

func TestView_EnterIgnoresBlank(t *testing.T) {
	v := NewView(nil)
	typeText(v, "   ")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_EnterIgnoredWhileDisabled(t *testing.T) {
	tests := []struct {
		name       string
		configured bool
		awaiting   bool
	}{
		{"awaiting", true, true},
		{"unconfigured", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(nil)
			typeText(v, "hi")
			v.SetState(tt.configured, tt.awaiting)

			_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

			assert.Nil(t, cmd)
			assert.Equal(t, "hi", v.InputValue())
			assert.True(t, v.InputDisabled())
		})
	}
}

func TestView_LettersTypeIntoInput(t *testing.T) {
	v := NewView(nil)

	typeText(v, "jk?")

	assert.Equal(t, "jk?", v.InputValue())
}

func TestView_AppendPending(t *testing.T) {
	v := NewView(nil)
	v.SetTranscript([]domain.Message{{ID: 1, Sender: domain.SenderAssistant, Text: "Hey!"}})

	v.AppendPending("question")

	msgs := v.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.SenderUser, msgs[1].Sender)
	assert.Equal(t, "question", msgs[1].Text)
	assert.Zero(t, msgs[1].ID)
}

func TestView_SetStateShowsTypingIndicator(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 30)

	v.SetState(true, true)

	assert.Contains(t, v.View(), "Assistant is typing...")
	assert.Equal(t, input.PlaceholderAwaiting, v.Placeholder())
}

func TestView_UnconfiguredPlaceholder(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(100, 30)

	v.SetState(false, false)

	assert.Contains(t, v.View(), "Please set your API key to start chatting...")
}

func TestView_FocusBlur(t *testing.T) {
	v := NewView(nil)

	v.Blur()
	typeText(v, "x")
	assert.Equal(t, "", v.InputValue())

	v.Focus()
	typeText(v, "x")
	assert.Equal(t, "x", v.InputValue())
}
