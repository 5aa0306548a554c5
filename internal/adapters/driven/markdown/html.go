package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// markRenderer overrides goldmark's HTML output for every node that
// carries visible text, wrapping the part inside span in <mark>.
type markRenderer struct {
	offsets map[ast.Node]int
	span    *domain.TextSpan
	marked  bool
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *markRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindText, r.renderText)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
}

func (r *markRenderer) renderText(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)
	if n.IsRaw() {
		_, _ = w.Write(n.Segment.Value(source))
		return ast.WalkContinue, nil
	}

	r.writeMarked(w, textValue(n, source), node)
	switch {
	case n.HardLineBreak():
		_, _ = w.WriteString("<br>\n")
	case n.SoftLineBreak():
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *markRenderer) renderCodeSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("<code>")
	r.writeMarked(w, codeSpanText(node.(*ast.CodeSpan), source), node)
	_, _ = w.WriteString("</code>")
	return ast.WalkSkipChildren, nil
}

func (r *markRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("<pre><code")
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		if lang := fenced.Language(source); lang != nil {
			_, _ = w.WriteString(` class="language-`)
			_, _ = w.Write(util.EscapeHTML(lang))
			_ = w.WriteByte('"')
		}
	}
	_ = w.WriteByte('>')
	r.writeMarked(w, codeBlockText(node, source), node)
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

// writeMarked writes value escaped, marking the bytes that fall inside the
// span given that value starts at node's recorded text offset.
func (r *markRenderer) writeMarked(w util.BufWriter, value []byte, node ast.Node) {
	start, known := r.offsets[node]
	if r.span == nil || !known || !r.span.Overlaps(start, start+len(value)) {
		_, _ = w.Write(util.EscapeHTML(value))
		return
	}

	lo := max(r.span.Start-start, 0)
	hi := min(r.span.End-start, len(value))

	_, _ = w.Write(util.EscapeHTML(value[:lo]))
	if r.marked {
		_, _ = w.WriteString("<mark>")
	} else {
		_, _ = w.WriteString(`<mark id="` + HighlightID + `" data-scroll="center">`)
		r.marked = true
	}
	_, _ = w.Write(util.EscapeHTML(value[lo:hi]))
	_, _ = w.WriteString("</mark>")
	_, _ = w.Write(util.EscapeHTML(value[hi:]))
}
