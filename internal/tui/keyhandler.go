package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabnews-cli/tn/internal/config"
)

// KeyHandler routes key events based on the active view. Bindings come from
// config; chords are spelled the way bubbletea reports them, e.g. "ctrl+s".
type KeyHandler struct {
	app      *App
	bindings config.KeyBindings
	modifier string
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	modifier := cfg.Keys.Modifier
	if modifier == "" {
		modifier = "ctrl"
	}
	return &KeyHandler{
		app:      app,
		bindings: cfg.Keys.Bindings,
		modifier: modifier,
	}
}

func (kh *KeyHandler) chord(key string) string {
	return kh.modifier + "+" + key
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	switch key {
	case kh.bindings.Quit:
		return a, tea.Quit
	case kh.chord(kh.bindings.Search):
		return kh.enterSearch()
	case kh.chord(kh.bindings.Login):
		return kh.enterLogin()
	}

	switch a.view {
	case ViewFeed:
		return kh.handleFeedKey(key)
	case ViewArticle:
		return kh.handleArticleKey(key)
	case ViewComments:
		return kh.handleCommentsKey(msg)
	case ViewSearch:
		return kh.handleSearchResultsKey(key)
	}

	return a, nil
}

func (kh *KeyHandler) handleFeedKey(key string) (tea.Model, tea.Cmd) {
	a := kh.app

	switch key {
	case "up", "k":
		a.selected = clampIndex(a.selected-1, len(a.contents))
	case "down", "j":
		a.selected = clampIndex(a.selected+1, len(a.contents))
	case "left", "h":
		// Page one is the floor; nothing to fetch below it.
		if a.page > 1 && a.canPage() {
			a.page--
			a.selected = 0
			return a, a.startFeedLoad()
		}
	case "right", "l":
		if a.canPage() {
			a.page++
			a.selected = 0
			return a, a.startFeedLoad()
		}
	case "enter":
		if len(a.contents) == 0 {
			return a, nil
		}
		return a, a.openArticle(a.contents[a.selected])
	case kh.bindings.AuthorFeed:
		if len(a.contents) == 0 {
			return a, nil
		}
		author := a.contents[a.selected].OwnerUsername
		if author == "" || author == a.author {
			return a, nil
		}
		// The author's feed is its own sequence; always start it at page one
		// and remember where the site-wide feed was.
		a.pageBeforeFilter = a.page
		a.author = author
		a.page = 1
		a.selected = 0
		return a, a.startFeedLoad()
	case kh.bindings.Back:
		// Back out of an author filter; at the top-level feed it is a no-op.
		if a.author != "" {
			a.author = ""
			a.page = a.pageBeforeFilter
			if a.page < 1 {
				a.page = 1
			}
			a.selected = 0
			return a, a.startFeedLoad()
		}
	}

	return a, nil
}

func (kh *KeyHandler) handleArticleKey(key string) (tea.Model, tea.Cmd) {
	a := kh.app

	switch key {
	case "up", "k", "left", "h":
		if a.pageIndex > 0 {
			a.pageIndex--
		}
	case "down", "j", "right", "l":
		if a.pageIndex < len(a.pages)-1 {
			a.pageIndex++
		}
	case "enter", kh.bindings.Comments:
		if a.current == nil {
			return a, nil
		}
		return a, a.openComments(a.current)
	case kh.bindings.Open:
		if a.current == nil {
			return a, nil
		}
		return a, a.openInBrowser(a.current.CanonicalURL(a.cfg.API.SiteURL))
	case kh.bindings.Back:
		a.view = ViewFeed
		a.current = nil
		a.pages = nil
		a.pageIndex = 0
		a.articleErr = nil
		a.setStatus(a.feedLabel(), StatusInfo)
	}

	return a, nil
}

func (kh *KeyHandler) handleCommentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch msg.String() {
	case kh.bindings.Back:
		// The article's pages and page index were never discarded, so this
		// returns to exactly the page the reader left.
		a.view = ViewArticle
		a.comments = nil
		a.commentsErr = nil
		if a.current != nil {
			a.setStatus(a.current.Key(), StatusInfo)
		}
		return a, nil
	case kh.bindings.Open:
		if a.current == nil {
			return a, nil
		}
		return a, a.openInBrowser(a.current.CanonicalURL(a.cfg.API.SiteURL))
	}

	var cmd tea.Cmd
	a.commentsView, cmd = a.commentsView.Update(msg)
	return a, cmd
}

func (kh *KeyHandler) enterSearch() (tea.Model, tea.Cmd) {
	a := kh.app
	if a.searchEngine == nil {
		a.setStatus("Search unavailable", StatusWarn)
		return a, nil
	}
	if a.view == ViewSearch || a.view == ViewLogin {
		return a, nil
	}

	a.previousView = a.view
	a.view = ViewSearch
	a.searchResults = nil
	a.searchIndex = 0
	a.searchInput.Reset()
	a.setStatus("", StatusInfo)
	return a, a.searchInput.Focus()
}

func (kh *KeyHandler) enterLogin() (tea.Model, tea.Cmd) {
	a := kh.app
	if a.view == ViewLogin {
		return a, nil
	}
	if a.client.Token() != "" {
		a.setStatus(MsgLoggedIn, StatusSuccess)
		return a, nil
	}

	a.previousView = a.view
	a.view = ViewLogin
	a.emailInput.Reset()
	a.passwordInput.Reset()
	a.passwordInput.Blur()
	a.setStatus("", StatusInfo)
	return a, a.emailInput.Focus()
}

// handleSearchResultsKey covers the search view once the input is blurred and
// the result list has focus.
func (kh *KeyHandler) handleSearchResultsKey(key string) (tea.Model, tea.Cmd) {
	a := kh.app

	switch key {
	case "up", "k":
		a.searchIndex = clampIndex(a.searchIndex-1, len(a.searchResults))
	case "down", "j":
		a.searchIndex = clampIndex(a.searchIndex+1, len(a.searchResults))
	case "/":
		return a, a.searchInput.Focus()
	case "enter":
		if len(a.searchResults) == 0 {
			return a, nil
		}
		hit := a.searchResults[a.searchIndex]
		return a, a.openArticleByKey(hit.OwnerUsername, hit.Slug)
	case kh.bindings.Back:
		a.view = a.previousView
		a.setStatus("", StatusInfo)
	}

	return a, nil
}

func (kh *KeyHandler) isInTextInputMode() bool {
	switch kh.app.view {
	case ViewSearch:
		return kh.app.searchInput.Focused()
	case ViewLogin:
		return true
	}
	return false
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if kh.app.view == ViewLogin {
		return kh.handleLoginKey(msg)
	}
	return kh.handleSearchInputKey(msg)
}

func (kh *KeyHandler) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch msg.String() {
	case kh.bindings.Back:
		a.searchInput.Blur()
		a.view = a.previousView
		a.setStatus("", StatusInfo)
		return a, nil
	case "enter":
		query := a.searchInput.Value()
		a.searchInput.Blur()
		a.searchIndex = 0
		a.setStatus(MsgSearching, StatusInfo)
		return a, a.performSearch(query)
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (kh *KeyHandler) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch msg.String() {
	case kh.bindings.Back:
		a.view = a.previousView
		a.passwordInput.Reset()
		a.setStatus("", StatusInfo)
		return a, nil
	case "tab", "shift+tab":
		if a.emailInput.Focused() {
			a.emailInput.Blur()
			return a, a.passwordInput.Focus()
		}
		a.passwordInput.Blur()
		return a, a.emailInput.Focus()
	case "enter":
		if a.emailInput.Focused() {
			a.emailInput.Blur()
			return a, a.passwordInput.Focus()
		}
		return a, a.submitLogin()
	}

	var cmd tea.Cmd
	if a.emailInput.Focused() {
		a.emailInput, cmd = a.emailInput.Update(msg)
	} else {
		a.passwordInput, cmd = a.passwordInput.Update(msg)
	}
	return a, cmd
}

// GetHelpForCurrentView returns the hint fragments for the status bar.
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	b := kh.bindings

	switch kh.app.view {
	case ViewFeed:
		help := []string{"↑/↓ select"}
		if kh.app.canPage() {
			help = append(help, "←/→ page")
		}
		help = append(help, "enter read")
		if kh.app.author != "" {
			help = append(help, b.Back+" all posts")
		} else {
			help = append(help, b.AuthorFeed+" author", kh.chord(b.Search)+" search")
		}
		return append(help, b.Quit+" quit")
	case ViewArticle:
		return []string{
			"↑/↓ page",
			"enter/" + b.Comments + " comments",
			b.Open + " browser",
			b.Back + " back",
		}
	case ViewComments:
		return []string{
			"↑/↓ scroll",
			b.Open + " browser",
			b.Back + " back",
		}
	case ViewSearch:
		if kh.app.searchInput.Focused() {
			return []string{"enter search", b.Back + " cancel"}
		}
		return []string{"↑/↓ select", "enter open", "/ edit query", b.Back + " back"}
	case ViewLogin:
		return []string{"tab switch field", "enter submit", b.Back + " cancel"}
	}

	return []string{b.Quit + " quit"}
}
