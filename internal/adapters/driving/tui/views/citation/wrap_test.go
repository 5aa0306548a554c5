package citation

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/onboard/internal/core/domain"
)

func segmentTexts(text string, segs []segment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = text[s.start:s.end]
	}
	return out
}

func TestWrapRange(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "short line", 20, []string{"short line"}},
		{"breaks at spaces", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"hard break for long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"empty", "", 10, []string{""}},
		{"wide runes", "日本語テキスト", 6, []string{"日本語", "テキス", "ト"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := wrapRange(tt.text, 0, len(tt.text), tt.width)
			assert.Equal(t, tt.want, segmentTexts(tt.text, segs))
		})
	}
}

func TestWrapRange_SubRange(t *testing.T) {
	text := "Title\nWe use Go for all backend services."
	segs := wrapRange(text, 6, len(text), 12)

	assert.Equal(t, []string{"We use Go", "for all", "backend", "services."}, segmentTexts(text, segs))
	assert.Equal(t, 6, segs[0].start)
}

func TestRenderSegment(t *testing.T) {
	plain := lipgloss.NewStyle()
	hl := lipgloss.NewStyle()
	text := "abcdef"
	seg := segment{0, 6}

	assert.Equal(t, "abcdef", renderSegment(text, seg, nil, plain, hl))
	assert.Equal(t, "abcdef", renderSegment(text, seg, &domain.TextSpan{Start: 2, End: 4}, plain, hl))
	assert.Equal(t, "abcdef", renderSegment(text, segment{0, 2}, &domain.TextSpan{Start: 1, End: 9}, plain, hl))
}
