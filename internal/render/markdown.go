package render

import (
	"github.com/charmbracelet/glamour"
)

const (
	// Readability bounds for the markdown word-wrap column.
	wordWrapMaxWidth = 120
	wordWrapMinWidth = 20
)

// Markdown renders TabNews markdown bodies into styled terminal text. The
// underlying glamour renderer is cached and only rebuilt when the target
// width drifts far enough to matter.
type Markdown struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdown returns an empty renderer; the first Render call builds the
// glamour instance for the requested width.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// WrapWidth computes the word-wrap column for a terminal of the given width.
func WrapWidth(termWidth int) int {
	w := (termWidth * 9) / 10
	if w > wordWrapMaxWidth {
		w = wordWrapMaxWidth
	}
	if termWidth < 50 {
		w = termWidth - 4
	}
	if w < wordWrapMinWidth {
		w = wordWrapMinWidth
	}
	return w
}

// Render converts markdown to styled text wrapped for a terminal of the
// given width.
func (m *Markdown) Render(body string, termWidth int) (string, error) {
	wrapWidth := WrapWidth(termWidth)

	if m.renderer == nil || abs(m.width-wrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return "", err
		}
		m.renderer = r
		m.width = wrapWidth
	}

	return m.renderer.Render(body)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
