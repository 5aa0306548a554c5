// Package citation provides the citation viewer for the TUI: a reference
// document with the quoted passage highlighted and scrolled into view.
package citation

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/onboard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/onboard/internal/core/domain"
)

// reservedLines is the chrome around the document: title, separator, blank
// lines, scroll indicator and help.
const reservedLines = 7

// View is the citation viewer.
type View struct {
	styles *styles.Styles

	document      *domain.HighlightedDocument
	lines         []string
	highlightLine int
	scrollOffset  int
	width         int
	height        int
	loading       bool
	err           error
}

// NewView creates a new citation view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		highlightLine: -1,
		width:         60,
		height:        20,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetLoading clears the viewer while a document is being rendered.
func (v *View) SetLoading() {
	v.loading = true
	v.err = nil
	v.document = nil
	v.lines = nil
	v.highlightLine = -1
	v.scrollOffset = 0
}

// SetDocument shows a rendered document and centres the highlight.
// Without a highlight the view opens at the top.
func (v *View) SetDocument(doc *domain.HighlightedDocument) {
	v.loading = false
	v.err = nil
	v.document = doc
	v.scrollOffset = 0
	v.layout()
	v.CenterOnHighlight()
}

// SetError shows a load failure.
func (v *View) SetError(err error) {
	v.loading = false
	v.err = err
}

// Update handles messages for the citation view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CitationSettled:
		v.CenterOnHighlight()
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles scrolling keys.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.scrollTo(v.scrollOffset - 1)
	case "down", "j":
		v.scrollTo(v.scrollOffset + 1)
	case "pgup", "ctrl+u":
		v.scrollTo(v.scrollOffset - v.visibleLines())
	case "pgdown", "ctrl+d":
		v.scrollTo(v.scrollOffset + v.visibleLines())
	case "home", "g":
		v.scrollTo(0)
	case "end", "G":
		v.scrollTo(v.maxScrollOffset())
	}

	return v, nil
}

// CenterOnHighlight scrolls so the highlighted line sits in the vertical
// centre. It does nothing when there is no highlight.
func (v *View) CenterOnHighlight() {
	if v.highlightLine < 0 {
		return
	}
	v.scrollTo(v.highlightLine - v.visibleLines()/2)
}

func (v *View) scrollTo(offset int) {
	v.scrollOffset = max(0, min(offset, v.maxScrollOffset()))
}

// layout wraps the rendition to the current width and records which line
// holds the start of the highlight.
func (v *View) layout() {
	v.lines = nil
	v.highlightLine = -1
	if v.document == nil {
		return
	}

	text := v.document.Rendition.Text
	span := v.document.Span
	width := max(v.width-4, 20)

	blocks := v.document.Rendition.Blocks
	if len(blocks) == 0 && text != "" {
		blocks = []domain.RenderedBlock{{Kind: domain.BlockParagraph, Start: 0, End: len(text)}}
	}

	for i, b := range blocks {
		if i > 0 && !(b.Kind == domain.BlockListItem && blocks[i-1].Kind == domain.BlockListItem) {
			v.lines = append(v.lines, "")
		}

		first, rest, base := v.decorate(b)
		indent := lipgloss.Width(first)
		for j, seg := range wrapRange(text, b.Start, b.End, width-indent) {
			prefix := rest
			if j == 0 {
				prefix = first
			}
			if v.highlightLine < 0 && span != nil && seg.start <= span.Start && span.Start < seg.end {
				v.highlightLine = len(v.lines)
			}
			v.lines = append(v.lines, prefix+renderSegment(text, seg, span, base, v.styles.Highlight))
		}
	}
}

// decorate returns the first-line prefix, continuation prefix and text
// style for a block.
func (v *View) decorate(b domain.RenderedBlock) (first, rest string, style lipgloss.Style) {
	switch b.Kind {
	case domain.BlockHeading:
		if b.Level <= 1 {
			return "", "", v.styles.Title
		}
		return "", "", v.styles.Subtitle
	case domain.BlockListItem:
		pad := strings.Repeat("  ", max(b.Level-1, 0))
		return pad + "• ", pad + "  ", v.styles.Normal
	case domain.BlockQuote:
		return "│ ", "│ ", v.styles.Muted
	case domain.BlockCode:
		return "  ", "  ", v.styles.Muted
	case domain.BlockParagraph, domain.BlockRule:
	}
	return "", "", v.styles.Normal
}

// visibleLines returns the number of document lines that fit.
func (v *View) visibleLines() int {
	return max(v.height-reservedLines, 1)
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the citation view.
func (v *View) View() string {
	var b strings.Builder

	title := "Citation"
	if v.document != nil {
		title = fmt.Sprintf("[%d] %s", v.document.Document.Ordinal(), v.document.Document.Title)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 1)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading document..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()

	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()

	case len(v.lines) == 0:
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	end := min(v.scrollOffset+visible, len(v.lines))
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.lines[i])
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.document.Quote != "" && !v.document.Highlighted() {
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("  Quote not found: %q", v.document.Quote)))
	} else if len(v.lines) > visible {
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage, v.scrollOffset+1, end, len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [tab] chat  [esc] close")
}

// SetDimensions resizes the view, rewraps and recentres on the highlight.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.layout()
	if v.highlightLine >= 0 {
		v.CenterOnHighlight()
	} else {
		v.scrollTo(v.scrollOffset)
	}
}

// Document returns the displayed document.
func (v *View) Document() *domain.HighlightedDocument {
	return v.document
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// HighlightLine returns the line holding the highlight start, or -1.
func (v *View) HighlightLine() int {
	return v.highlightLine
}

// Lines returns the wrapped, styled document lines.
func (v *View) Lines() []string {
	return v.lines
}

// Loading reports whether a document is being rendered.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
