package render

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Wrap greedily word-wraps text to the given column width. Paragraph breaks
// in the input are preserved and tokens longer than width pass through
// unbroken.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// SplitPages wraps text to width and slices the resulting lines into pages of
// at most height lines each. The final partial page is kept. Empty text still
// yields a single empty page so callers always have something to show.
func SplitPages(text string, width, height int) []string {
	if height < 1 {
		height = 1
	}

	lines := strings.Split(Wrap(text, width), "\n")

	var pages []string
	for start := 0; start < len(lines); start += height {
		end := start + height
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, strings.Join(lines[start:end], "\n"))
	}

	if len(pages) == 0 {
		pages = []string{""}
	}
	return pages
}

// PaginateLines slices already-wrapped lines into pages of at most height
// lines. Used when the text was produced by a renderer that wraps on its own.
func PaginateLines(lines []string, height int) []string {
	if height < 1 {
		height = 1
	}
	if len(lines) == 0 {
		return []string{""}
	}

	var pages []string
	for start := 0; start < len(lines); start += height {
		end := start + height
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, strings.Join(lines[start:end], "\n"))
	}
	return pages
}

// ClampPage bounds a page index to [0, pages-1].
func ClampPage(index, pages int) int {
	if pages < 1 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index > pages-1 {
		return pages - 1
	}
	return index
}
