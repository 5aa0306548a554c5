package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/views/chat"
	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/views/citation"
	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/logger"
)

// defaultSettleDelay is how long after a citation loads the viewer
// recentres once more.
const defaultSettleDelay = 150 * time.Millisecond

// CitationState describes the citation viewer. DocumentIndex and
// QuotedText are nil while closed.
type CitationState struct {
	IsOpen        bool
	DocumentIndex *int
	QuotedText    *string
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	chatView     *chat.View
	citationView *citation.View
	statusBar    *status.Bar

	// focus is the pane receiving keys.
	focus messages.Pane

	citation CitationState

	// generation increments on every reset; replies, reveals and loads
	// tagged with an older generation are dropped.
	generation int

	awaiting bool

	// load numbers citation opens so a slow load cannot replace a newer one.
	load int

	// banner is the last turn error, shown until dismissed.
	banner error

	showHelp bool

	revealDelay time.Duration
	settleDelay time.Duration

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		chatView:     chat.NewView(s),
		citationView: citation.NewView(s),
		statusBar:    status.NewBar(s, km),
		focus:        messages.PaneChat,
		revealDelay:  domain.DefaultAppSettings().Chat.CitationDelay,
		settleDelay:  defaultSettleDelay,
	}
	a.chatView.SetTranscript(ports.Chat.Transcript())
	a.syncState()
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// WithRevealDelay sets how long after a reply the cited passage opens.
func (a *App) WithRevealDelay(d time.Duration) *App {
	a.revealDelay = d
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("onboard - Onboarding Assistant"),
		a.chatView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.MessageSubmitted:
		return a, a.submit(msg.Text)

	case messages.TurnCompleted:
		return a, a.completeTurn(msg)

	case messages.CitationRevealed:
		if msg.Generation != a.generation {
			return a, nil
		}
		return a, a.openCitation(msg.Citation)

	case messages.CitationLoaded:
		if msg.Generation != a.generation || msg.Load != a.load || !a.citation.IsOpen {
			return a, nil
		}
		if msg.Err != nil {
			logger.Warn("Citation load failed: %v", msg.Err)
			a.citationView.SetError(msg.Err)
			return a, nil
		}
		a.citationView.SetDocument(msg.Document)
		return a, a.settle()

	case messages.CitationSettled:
		if msg.Generation != a.generation || !a.citation.IsOpen {
			return a, nil
		}
		a.citationView.Update(msg)
		return a, nil

	case messages.CitationClosed:
		a.closeCitation()
		return a, nil

	case messages.ConversationReset:
		return a, a.reset()

	case messages.ErrorOccurred:
		a.setBanner(msg.Err)
		return a, nil

	case messages.ErrorDismissed:
		a.setBanner(nil)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Cursor blink and other input housekeeping.
	var cmd tea.Cmd
	a.chatView, cmd = a.chatView.Update(msg)
	return a, cmd
}

// handleKey routes a key press.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if keymap.Matches(k, a.keymap.Quit) {
		return a, tea.Quit
	}

	if a.showHelp {
		if keymap.Matches(k, a.keymap.Help) || keymap.Matches(k, a.keymap.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	switch {
	case keymap.Matches(k, a.keymap.Help) && (a.focus == messages.PaneCitation || a.chatView.InputValue() == ""):
		a.showHelp = true
		return a, nil

	case keymap.Matches(k, a.keymap.Close):
		if a.banner != nil {
			a.setBanner(nil)
		} else if a.citation.IsOpen {
			a.closeCitation()
		}
		return a, nil

	case keymap.Matches(k, a.keymap.Reset):
		return a, a.reset()

	case keymap.Matches(k, a.keymap.SwitchFocus):
		if a.citation.IsOpen {
			if a.focus == messages.PaneChat {
				return a, a.setFocus(messages.PaneCitation)
			}
			return a, a.setFocus(messages.PaneChat)
		}
		return a, nil
	}

	var cmd tea.Cmd
	if a.focus == messages.PaneCitation {
		a.citationView, cmd = a.citationView.Update(msg)
		return a, cmd
	}
	a.chatView, cmd = a.chatView.Update(msg)
	return a, cmd
}

// submit starts a turn in the background.
func (a *App) submit(text string) tea.Cmd {
	if a.awaiting || !a.ports.Chat.Configured() {
		return nil
	}

	a.awaiting = true
	a.chatView.AppendPending(text)
	a.syncState()

	ctx, chatService, gen := a.ctx, a.ports.Chat, a.generation
	return func() tea.Msg {
		result, err := chatService.Submit(ctx, text)
		return messages.TurnCompleted{Generation: gen, Result: result, Err: err}
	}
}

// completeTurn refreshes the transcript and schedules the citation reveal.
func (a *App) completeTurn(msg messages.TurnCompleted) tea.Cmd {
	a.awaiting = false
	a.chatView.SetTranscript(a.ports.Chat.Transcript())
	a.syncState()

	if msg.Generation != a.generation {
		return nil
	}
	if msg.Err != nil {
		a.setBanner(msg.Err)
		return nil
	}
	if msg.Result == nil {
		return nil
	}
	if msg.Result.Err != nil && !errors.Is(msg.Result.Err, domain.ErrLLMUnavailable) {
		a.setBanner(msg.Result.Err)
	}
	if msg.Result.Citation == nil {
		return nil
	}

	cit, gen := *msg.Result.Citation, a.generation
	reveal := func(time.Time) tea.Msg {
		return messages.CitationRevealed{Generation: gen, Citation: cit}
	}
	if a.revealDelay <= 0 {
		return func() tea.Msg { return reveal(time.Now()) }
	}
	return tea.Tick(a.revealDelay, reveal)
}

// openCitation opens or retargets the viewer and loads the document.
func (a *App) openCitation(cit domain.CitationReference) tea.Cmd {
	index, quote := cit.DocumentIndex, cit.QuotedText
	a.citation = CitationState{IsOpen: true, DocumentIndex: &index, QuotedText: &quote}
	a.citationView.SetLoading()
	a.layout()

	a.load++
	ctx, citations, gen, load := a.ctx, a.ports.Citation, a.generation, a.load
	return func() tea.Msg {
		doc, err := citations.Highlight(ctx, index, quote)
		return messages.CitationLoaded{Generation: gen, Load: load, Document: doc, Err: err}
	}
}

// settle schedules the follow-up recentre.
func (a *App) settle() tea.Cmd {
	gen := a.generation
	return tea.Tick(a.settleDelay, func(time.Time) tea.Msg {
		return messages.CitationSettled{Generation: gen}
	})
}

// closeCitation closes the viewer and returns focus to the chat.
func (a *App) closeCitation() {
	a.citation = CitationState{}
	a.setFocus(messages.PaneChat)
	a.layout()
}

// reset starts a new conversation.
func (a *App) reset() tea.Cmd {
	a.ports.Chat.Reset()
	a.generation++
	a.banner = nil
	a.closeCitation()
	a.chatView.SetTranscript(a.ports.Chat.Transcript())
	a.syncState()
	return nil
}

func (a *App) setFocus(p messages.Pane) tea.Cmd {
	a.focus = p
	a.statusBar.SetCitationFocused(p == messages.PaneCitation)
	if p == messages.PaneChat {
		return a.chatView.Focus()
	}
	a.chatView.Blur()
	return nil
}

func (a *App) setBanner(err error) {
	a.banner = err
	a.layout()
}

// syncState pushes chat availability to the input and status bar.
func (a *App) syncState() {
	configured := a.ports.Chat.Configured()
	a.chatView.SetState(configured, a.awaiting)
	a.statusBar.SetModel(a.ports.Chat.ModelName())

	switch {
	case !configured:
		a.statusBar.SetState(status.StateUnconfigured)
	case a.awaiting:
		a.statusBar.SetState(status.StateThinking)
	default:
		a.statusBar.SetState(status.StateOnline)
	}
}

// layout sizes the panes. The citation viewer takes the right side while open.
func (a *App) layout() {
	if !a.ready {
		return
	}
	a.statusBar.SetWidth(a.width)

	chatWidth := a.width
	if a.citation.IsOpen {
		citationWidth := a.width * 45 / 100
		chatWidth = a.width - citationWidth
		a.citationView.SetDimensions(citationWidth-2, a.mainHeight()-2)
	}
	a.chatView.SetDimensions(chatWidth-2, a.mainHeight()-2)
}

// mainHeight is the height left for the panes.
func (a *App) mainHeight() int {
	h := a.height - 1
	if a.banner != nil {
		h -= 3
	}
	return max(h, 4)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.showHelp {
		return a.viewHelp()
	}

	h := a.mainHeight()
	chatWidth := a.width
	panes := make([]string, 0, 2)

	if a.citation.IsOpen {
		citationWidth := a.width * 45 / 100
		chatWidth = a.width - citationWidth
		panes = append(panes,
			a.panel(a.chatView.View(), chatWidth, h, a.focus == messages.PaneChat),
			a.panel(a.citationView.View(), citationWidth, h, a.focus == messages.PaneCitation),
		)
	} else {
		panes = append(panes, a.panel(a.chatView.View(), chatWidth, h, true))
	}

	parts := []string{lipgloss.JoinHorizontal(lipgloss.Top, panes...)}
	if a.banner != nil {
		parts = append(parts, a.styles.Banner.Width(max(a.width-4, 10)).Render(
			fmt.Sprintf("Error: %s  [esc] dismiss", a.banner.Error())))
	}
	parts = append(parts, a.statusBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// panel frames a pane.
func (a *App) panel(content string, width, height int, focused bool) string {
	style := a.styles.Panel
	if focused {
		style = a.styles.FocusedPanel
	}
	return style.Width(max(width-2, 1)).Height(max(height-2, 1)).MaxHeight(height).Render(content)
}

// viewHelp renders the help overlay.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("onboard - Help"))
	b.WriteString("\n\n")

	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString("Answers may cite a reference document as [N][\"quote\"]; the\n")
	b.WriteString("passage opens in the side panel with the quote highlighted.\n")

	if a.ports.References != nil {
		if n, err := a.ports.References.Count(a.ctx); err == nil {
			b.WriteString(fmt.Sprintf("\nReference documents: %d\n", n))
		}
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[?/esc] close help"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Focus returns the pane with keyboard focus.
func (a *App) Focus() messages.Pane {
	return a.focus
}

// Citation returns the citation viewer state.
func (a *App) Citation() CitationState {
	return a.citation
}

// CitationView returns the citation viewer.
func (a *App) CitationView() *citation.View {
	return a.citationView
}

// ChatView returns the chat view.
func (a *App) ChatView() *chat.View {
	return a.chatView
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Awaiting reports whether a turn is in flight.
func (a *App) Awaiting() bool {
	return a.awaiting
}

// Banner returns the error shown in the banner, if any.
func (a *App) Banner() error {
	return a.banner
}

// Generation returns the conversation generation.
func (a *App) Generation() int {
	return a.generation
}

// ShowingHelp reports whether the help overlay is visible.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
