package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_NeverExceedsWidth(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog and keeps on running through the field"

	for _, width := range []int{10, 20, 40, 80} {
		for _, line := range strings.Split(Wrap(text, width), "\n") {
			assert.LessOrEqual(t, len(line), width, "width %d produced %q", width, line)
		}
	}
}

func TestWrap_LongTokenPassesThrough(t *testing.T) {
	token := strings.Repeat("x", 50)
	wrapped := Wrap("start "+token+" end", 20)
	assert.Contains(t, wrapped, token, "unsplittable tokens are not hyphenated")
}

func TestWrap_PreservesParagraphBreaks(t *testing.T) {
	wrapped := Wrap("first paragraph\n\nsecond paragraph", 80)
	assert.Equal(t, "first paragraph\n\nsecond paragraph", wrapped)
}

func TestWrap_ZeroWidthReturnsInput(t *testing.T) {
	assert.Equal(t, "untouched text", Wrap("untouched text", 0))
}

func TestSplitPages_RoundTrip(t *testing.T) {
	text := strings.Repeat("some words that will wrap around nicely ", 40)

	for _, height := range []int{1, 3, 7, 20} {
		pages := SplitPages(text, 30, height)

		var joined []string
		for _, p := range pages {
			joined = append(joined, strings.Split(p, "\n")...)
		}
		wrapped := strings.Split(Wrap(text, 30), "\n")
		assert.Equal(t, wrapped, joined, "height %d must reproduce the wrapped line sequence", height)
	}
}

func TestSplitPages_PageCountIsCeilOfLines(t *testing.T) {
	// 10 lines of input, no wrapping at width 80
	text := strings.TrimSuffix(strings.Repeat("line\n", 10), "\n")

	tests := []struct {
		height int
		pages  int
	}{
		{1, 10},
		{3, 4},
		{4, 3},
		{5, 2},
		{10, 1},
		{11, 1},
	}

	for _, tc := range tests {
		pages := SplitPages(text, 80, tc.height)
		require.Len(t, pages, tc.pages, "height %d", tc.height)

		// All but the last page hold exactly height lines, the last the remainder.
		for i, p := range pages {
			n := len(strings.Split(p, "\n"))
			if i < len(pages)-1 {
				assert.Equal(t, tc.height, n)
			} else {
				assert.GreaterOrEqual(t, n, 1)
				assert.LessOrEqual(t, n, tc.height)
			}
		}
	}
}

func TestSplitPages_EmptyBodyYieldsSingleEmptyPage(t *testing.T) {
	pages := SplitPages("", 80, 20)
	require.Len(t, pages, 1)
	assert.Equal(t, "", pages[0])
}

func TestSplitPages_HeightFloorsAtOne(t *testing.T) {
	pages := SplitPages("a\nb\nc", 80, 0)
	assert.Len(t, pages, 3)
}

func TestPaginateLines_EmptyInput(t *testing.T) {
	pages := PaginateLines(nil, 5)
	require.Len(t, pages, 1)
	assert.Equal(t, "", pages[0])
}

func TestPaginateLines_Remainder(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}
	pages := PaginateLines(lines, 2)
	require.Len(t, pages, 3)
	assert.Equal(t, "a\nb", pages[0])
	assert.Equal(t, "c\nd", pages[1])
	assert.Equal(t, "e", pages[2])
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 0, ClampPage(-1, 5))
	assert.Equal(t, 0, ClampPage(0, 5))
	assert.Equal(t, 4, ClampPage(4, 5))
	assert.Equal(t, 4, ClampPage(9, 5))
	assert.Equal(t, 0, ClampPage(3, 0))
}

func TestWrapWidth_Bounds(t *testing.T) {
	assert.Equal(t, 120, WrapWidth(200), "caps at maximum readable width")
	assert.Equal(t, 72, WrapWidth(80))
	assert.Equal(t, 26, WrapWidth(30), "narrow terminals keep a small margin")
	assert.Equal(t, 20, WrapWidth(10), "never below the minimum")
}
