// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/styles"
)

// State represents the assistant's availability for display.
type State string

const (
	StateOnline       State = "online"
	StateUnconfigured State = "unconfigured"
	StateThinking     State = "thinking"
)

// Status labels.
const (
	LabelOnline       = "AI Assistant Online"
	LabelUnconfigured = "API Key Required"
	LabelThinking     = "Thinking..."
)

// Bar displays assistant status and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	model    string
	citation bool
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateOnline,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the assistant state.
func (s *Bar) renderLeft() string {
	switch s.state {
	case StateUnconfigured:
		return s.styles.Warning.Render("○ " + LabelUnconfigured)
	case StateThinking:
		return s.styles.Muted.Render("◌ " + LabelThinking)
	case StateOnline:
	}
	label := "● " + LabelOnline
	if s.model != "" {
		label += " (" + s.model + ")"
	}
	return s.styles.Success.Render(label)
}

// renderRight renders keybinding hints for the focused pane.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.citation {
		bindings = s.keymap.CitationHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetModel sets the model name shown while online.
func (s *Bar) SetModel(model string) {
	s.model = model
}

// Model returns the model name.
func (s *Bar) Model() string {
	return s.model
}

// SetCitationFocused switches the hints to the citation viewer's bindings.
func (s *Bar) SetCitationFocused(focused bool) {
	s.citation = focused
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
