package citation

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

// segment is a byte range of the rendition text that fits on one line.
type segment struct {
	start int
	end   int
}

// wrapRange greedily breaks text[start:end] into segments no wider than
// width display columns, preferring to break at spaces. The space at a
// break is dropped. An empty range yields one empty segment.
func wrapRange(text string, start, end, width int) []segment {
	if width < 1 {
		width = 1
	}

	var segs []segment
	lineStart := start
	lineWidth := 0
	lastSpace := -1

	for i, r := range text[start:end] {
		pos := start + i
		w := runewidth.RuneWidth(r)

		if lineWidth+w > width && pos > lineStart {
			if lastSpace > lineStart {
				segs = append(segs, segment{lineStart, lastSpace})
				lineStart = lastSpace + 1
				lineWidth = runewidth.StringWidth(text[lineStart:pos])
			} else {
				segs = append(segs, segment{lineStart, pos})
				lineStart = pos
				lineWidth = 0
			}
			lastSpace = -1
		}

		if r == ' ' {
			lastSpace = pos
		}
		lineWidth += w
	}

	return append(segs, segment{lineStart, end})
}

// renderSegment styles text[seg] with base, switching to hl for the part
// inside span.
func renderSegment(text string, seg segment, span *domain.TextSpan, base, hl lipgloss.Style) string {
	if span == nil || !span.Overlaps(seg.start, seg.end) {
		return base.Render(text[seg.start:seg.end])
	}

	hs := max(seg.start, span.Start)
	he := min(seg.end, span.End)

	out := ""
	if hs > seg.start {
		out += base.Render(text[seg.start:hs])
	}
	out += hl.Render(text[hs:he])
	if he < seg.end {
		out += base.Render(text[he:seg.end])
	}
	return out
}
