package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/tabnews-cli/tn/internal/api"
	"github.com/tabnews-cli/tn/internal/render"
)

const dateLayout = "02 Jan 2006 15:04"

// articleChrome is the lines each article page spends on its header block.
const articleChrome = 4

func (a *App) renderFeed() string {
	if a.feedErr != nil {
		return a.renderErrorBlock("Could not load the feed", a.feedErr,
			"Check your connection, then change page to retry.")
	}

	if len(a.contents) == 0 {
		return "\n  " + renderMuted("Nothing here. Try another page.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, c := range a.contents {
		prefix := "  "
		titleStyle := UnreadItemStyle
		if a.readSet[c.Key()] {
			titleStyle = ReadItemStyle
		}
		if i == a.selected {
			prefix = SelectedItemStyle.Render("→ ")
			titleStyle = SelectedItemStyle
		}

		title := truncateEnd(c.Title, a.contentWidth())
		b.WriteString("  " + prefix + titleStyle.Render(title) + "\n")

		meta := fmt.Sprintf("    %s • %s • %d↑",
			AuthorStyle.Render(c.OwnerUsername),
			TimeStyle.Render(contentDate(c).Format(dateLayout)),
			c.Tabcoins,
		)
		if c.ChildrenDeepCount > 0 {
			meta += fmt.Sprintf(" • %d comments", c.ChildrenDeepCount)
		}
		b.WriteString("  " + meta + "\n")
	}

	return b.String()
}

func (a *App) renderArticle() string {
	if a.articleErr != nil {
		return a.renderErrorBlock("Could not load this article", a.articleErr,
			"Press "+a.cfg.Keys.Bindings.Back+" to go back to the feed.")
	}

	if len(a.pages) == 0 {
		return ""
	}

	return a.pages[render.ClampPage(a.pageIndex, len(a.pages))]
}

// buildArticlePages renders the body once and splits the result into fixed
// height pages, each carrying the same header block. The page list is rebuilt
// whenever the terminal is resized.
func (a *App) buildArticlePages(c *api.Content) []string {
	header := a.articleHeader(c)

	bodyHeight := a.contentHeight() - articleChrome
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	rendered, err := a.markdown.Render(c.Body, a.width)
	if err != nil {
		// Styled rendering failed; fall back to a plain greedy wrap.
		rendered = render.Wrap(c.Body, render.WrapWidth(a.width))
	}

	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	bodyPages := render.PaginateLines(lines, bodyHeight)

	pages := make([]string, len(bodyPages))
	for i, page := range bodyPages {
		pages[i] = header + page
	}
	return pages
}

func (a *App) articleHeader(c *api.Content) string {
	title := FeedTitleStyle.Render(truncateEnd(c.Title, a.contentWidth()))
	meta := AuthorStyle.Render(c.OwnerUsername) + " " +
		TimeStyle.Render(contentDate(*c).Format(dateLayout))
	if c.SourceURL != "" {
		meta += " " + renderMuted(truncateEnd(c.SourceURL, a.contentWidth()/2))
	}

	return "  " + title + "\n  " + meta + "\n" + a.separator() + "\n"
}

func (a *App) renderComments() string {
	if a.commentsErr != nil {
		return a.renderErrorBlock("Could not load comments", a.commentsErr,
			"Press "+a.cfg.Keys.Bindings.Back+" to go back to the article.")
	}

	if !a.loading && len(a.comments) == 0 {
		return "\n  " + renderMuted(MsgNoComments)
	}

	return a.commentsView.View()
}

// buildCommentsContent flattens the comment list into the scrollable viewport
// body.
func (a *App) buildCommentsContent() string {
	if len(a.comments) == 0 {
		return ""
	}

	width := a.contentWidth()
	var b strings.Builder

	for i, c := range a.comments {
		head := AuthorStyle.Render(c.OwnerUsername) + " " +
			TimeStyle.Render(c.CreatedAt.Format(dateLayout)) +
			renderMuted(fmt.Sprintf(" %d↑", c.Tabcoins))
		b.WriteString("  " + head + "\n")

		body := render.Wrap(strings.TrimSpace(c.Body), width)
		for _, line := range strings.Split(body, "\n") {
			b.WriteString("  " + line + "\n")
		}

		if i < len(a.comments)-1 {
			b.WriteString(a.separator() + "\n")
		}
	}

	return b.String()
}

func (a *App) renderSearch() string {
	var b strings.Builder
	b.WriteString("\n  " + HeaderStyle.Render("Search this session") + "\n\n")
	b.WriteString("  " + a.searchInput.View() + "\n\n")

	if a.searchInput.Focused() {
		return b.String()
	}

	if len(a.searchResults) == 0 {
		b.WriteString("  " + renderMuted("No matches.") + "\n")
		return b.String()
	}

	for i, r := range a.searchResults {
		prefix := "  "
		style := UnreadItemStyle
		if i == a.searchIndex {
			prefix = SelectedItemStyle.Render("→ ")
			style = SelectedItemStyle
		}
		title := truncateEnd(r.Title, a.contentWidth()-20)
		b.WriteString("  " + prefix + style.Render(title) +
			" " + AuthorStyle.Render(r.OwnerUsername) + "\n")
	}

	return b.String()
}

func (a *App) renderLogin() string {
	var b strings.Builder
	b.WriteString("\n  " + HeaderStyle.Render("Log in to TabNews") + "\n\n")
	b.WriteString("  " + a.emailInput.View() + "\n")
	b.WriteString("  " + a.passwordInput.View() + "\n\n")
	b.WriteString("  " + renderMuted("The session token is kept locally and sent as a cookie.") + "\n")
	return b.String()
}

// renderErrorBlock is the shared failure screen: a bold headline, the wrapped
// error text, and a recovery hint. Navigation keys keep working underneath it.
func (a *App) renderErrorBlock(headline string, err error, hint string) string {
	width := a.contentWidth()

	var b strings.Builder
	b.WriteString("\n  " + ErrorMessageStyle.Render(headline) + "\n\n")
	for _, line := range strings.Split(render.Wrap(err.Error(), width), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n  " + HelpStyle.Render(hint) + "\n")
	return b.String()
}

func (a *App) separator() string {
	width := a.contentWidth()
	return "  " + SeparatorStyle.Render(strings.Repeat("─", width))
}

func pageIndicator(index, total int) string {
	return fmt.Sprintf("Page %d of %d", index+1, total)
}

// contentDate prefers the published timestamp, falling back to creation time
// for RSS items and drafts.
func contentDate(c api.Content) time.Time {
	if !c.PublishedAt.IsZero() {
		return c.PublishedAt
	}
	return c.CreatedAt
}
