// Package markdown renders reference documents with goldmark, both as plain
// text for quote search and as HTML with the cited passage marked.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/custodia-labs/onboard/internal/core/domain"
	"github.com/custodia-labs/onboard/internal/core/ports/driven"
)

// HighlightID is the element id of the first <mark> in highlighted HTML.
const HighlightID = "citation-highlight"

// Ensure Renderer implements the interface.
var _ driven.MarkdownRenderer = (*Renderer)(nil)

// Renderer converts markdown to text and HTML. It is safe for concurrent use.
type Renderer struct{}

// NewRenderer creates a markdown renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render returns the visible text of body and its block layout.
// Blocks are separated by a single newline; soft line breaks become spaces.
func (r *Renderer) Render(body string) (domain.Rendition, error) {
	source := []byte(body)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	ex := newExtractor(source)
	if err := ex.walk(doc); err != nil {
		return domain.Rendition{}, fmt.Errorf("walk markdown: %w", err)
	}
	return domain.Rendition{Text: ex.buf.String(), Blocks: ex.blocks}, nil
}

// RenderHTML renders body as HTML. When span is non-nil, the text it covers
// (in Render's text coordinates) is wrapped in <mark> elements; the first
// carries id="citation-highlight" and data-scroll="center".
func (r *Renderer) RenderHTML(body string, span *domain.TextSpan) (string, error) {
	source := []byte(body)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	ex := newExtractor(source)
	if err := ex.walk(doc); err != nil {
		return "", fmt.Errorf("walk markdown: %w", err)
	}

	mr := &markRenderer{offsets: ex.offsets, span: span}
	md := goldmark.New(goldmark.WithRendererOptions(
		renderer.WithNodeRenderers(util.Prioritized(mr, 100)),
	))

	var out bytes.Buffer
	if err := md.Renderer().Render(&out, source, doc); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return out.String(), nil
}

// extractor walks a document in order, building the visible text and
// remembering where each text-bearing node starts in it.
type extractor struct {
	source  []byte
	buf     strings.Builder
	blocks  []domain.RenderedBlock
	offsets map[ast.Node]int
}

func newExtractor(source []byte) *extractor {
	return &extractor{source: source, offsets: make(map[ast.Node]int)}
}

func (e *extractor) walk(doc ast.Node) error {
	return ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			e.block(domain.BlockHeading, node.Level, func() { e.inlines(node) })
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			e.block(blockKindFor(node), listDepth(node), func() { e.inlines(node) })
			return ast.WalkSkipChildren, nil
		case *ast.TextBlock:
			e.block(blockKindFor(node), listDepth(node), func() { e.inlines(node) })
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			e.block(domain.BlockCode, 0, func() { e.codeLines(n) })
			return ast.WalkSkipChildren, nil
		case *ast.ThematicBreak:
			e.block(domain.BlockRule, 0, func() {})
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

// block emits one leaf block, newline-separated from the previous one.
func (e *extractor) block(kind domain.BlockKind, level int, fill func()) {
	if e.buf.Len() > 0 {
		e.buf.WriteByte('\n')
	}
	start := e.buf.Len()
	fill()
	e.blocks = append(e.blocks, domain.RenderedBlock{
		Kind:  kind,
		Level: level,
		Start: start,
		End:   e.buf.Len(),
	})
}

// inlines writes the visible inline text under parent.
func (e *extractor) inlines(parent ast.Node) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			e.offsets[node] = e.buf.Len()
			e.buf.Write(textValue(node, e.source))
			switch {
			case node.HardLineBreak():
				e.buf.WriteByte('\n')
			case node.SoftLineBreak():
				e.buf.WriteByte(' ')
			}
		case *ast.String:
			e.buf.Write(node.Value)
		case *ast.CodeSpan:
			e.offsets[node] = e.buf.Len()
			e.buf.Write(codeSpanText(node, e.source))
		case *ast.AutoLink:
			e.buf.Write(node.Label(e.source))
		case *ast.Image, *ast.RawHTML:
			// Not visible as text.
		default:
			e.inlines(node)
		}
	}
}

func (e *extractor) codeLines(n ast.Node) {
	e.offsets[n] = e.buf.Len()
	e.buf.Write(bytes.TrimSuffix(codeBlockText(n, e.source), []byte("\n")))
}

// blockKindFor classifies a paragraph by its nearest list or quote ancestor.
func blockKindFor(n ast.Node) domain.BlockKind {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case ast.KindListItem:
			return domain.BlockListItem
		case ast.KindBlockquote:
			return domain.BlockQuote
		}
	}
	return domain.BlockParagraph
}

// listDepth counts the lists enclosing n; zero outside any list.
func listDepth(n ast.Node) int {
	depth := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == ast.KindList {
			depth++
		}
	}
	return depth
}

// textValue returns the visible bytes of a text node: backslash escapes
// removed and character references resolved, as goldmark's HTML writer
// does. Raw nodes are returned unchanged.
func textValue(n *ast.Text, source []byte) []byte {
	value := n.Segment.Value(source)
	if n.IsRaw() {
		return value
	}
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}

// codeSpanText joins a code span's raw children, turning line endings into
// spaces the way CommonMark renders them.
func codeSpanText(n *ast.CodeSpan, source []byte) []byte {
	var out []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			continue
		}
		value := t.Segment.Value(source)
		if bytes.HasSuffix(value, []byte("\n")) {
			out = append(out, value[:len(value)-1]...)
			out = append(out, ' ')
			continue
		}
		out = append(out, value...)
	}
	return out
}

func codeBlockText(n ast.Node, source []byte) []byte {
	var out []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		out = append(out, line.Value(source)...)
	}
	return out
}
