package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tabnews-cli/tn/internal/api"
	"github.com/tabnews-cli/tn/internal/browser"
	"github.com/tabnews-cli/tn/internal/config"
	"github.com/tabnews-cli/tn/internal/debuglog"
	"github.com/tabnews-cli/tn/internal/feed"
	"github.com/tabnews-cli/tn/internal/render"
	"github.com/tabnews-cli/tn/internal/search"
	"github.com/tabnews-cli/tn/internal/storage"
)

// chromeHeight is the vertical space reserved for the header and status bars.
const chromeHeight = 3

// App is the single owner of all view state. One key event is processed to
// completion before the next; fetches run as tea commands and deliver their
// results as messages, so no reader ever observes a half-updated buffer.
type App struct {
	cfg          *config.Config
	client       *api.Client
	store        *storage.Store
	rss          *feed.RSSSource
	launcher     *browser.Launcher
	searchEngine search.Searcher
	keyHandler   *KeyHandler
	markdown     *render.Markdown

	view         View
	previousView View
	width        int
	height       int

	// Feed state: 1-based API page, selection clamped to the list.
	contents []api.Content
	selected int
	page     int
	strategy string
	author   string // author filter; empty means the site-wide feed
	// pageBeforeFilter remembers the site-wide page so clearing the author
	// filter puts the reader back where they were.
	pageBeforeFilter int
	feedErr          error
	readSet          map[string]bool

	// Article state: pre-built pages, 0-based index.
	current    *api.Content
	pages      []string
	pageIndex  int
	articleErr error

	// Comments state.
	comments     []api.Comment
	commentsErr  error
	commentsView viewport.Model

	searchInput   textinput.Model
	searchResults []*search.Result
	searchIndex   int

	emailInput    textinput.Model
	passwordInput textinput.Model

	spinner    spinner.Model
	loading    bool
	status     string
	statusKind StatusKind
}

func NewApp(client *api.Client, store *storage.Store, cfg *config.Config) *App {
	si := textinput.New()
	si.Placeholder = "Search fetched contents..."

	ei := textinput.New()
	ei.Placeholder = "email"
	ei.Focus()

	pi := textinput.New()
	pi.Placeholder = "password"
	pi.EchoMode = textinput.EchoPassword

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)

	engine, err := search.NewEngine()
	if err != nil {
		debuglog.Errorf("search engine unavailable: %v", err)
		engine = nil
	}

	app := &App{
		cfg:           cfg,
		client:        client,
		store:         store,
		rss:           feed.NewRSSSource(cfg.Feed.RSSURL, nil),
		launcher:      browser.NewLauncher(cfg.UI.Browser),
		searchEngine:  engine,
		markdown:      render.NewMarkdown(),
		view:          ViewFeed,
		previousView:  ViewFeed,
		page:          1,
		strategy:      cfg.API.Strategy,
		readSet:       map[string]bool{},
		commentsView:  viewport.New(0, 0),
		searchInput:   si,
		emailInput:    ei,
		passwordInput: pi,
		spinner:       sp,
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

// SetAuthorFilter starts the session on a single author's feed instead of
// the site-wide one.
func (a *App) SetAuthorFilter(username string) {
	a.author = username
}

func (a *App) Init() tea.Cmd {
	a.loading = true
	a.status = MsgLoadingFeed
	return tea.Batch(
		a.loadReadSet(),
		a.loadFeed(),
		a.spinner.Tick,
		tea.EnterAltScreen,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.commentsView.Width = msg.Width
		a.commentsView.Height = msg.Height - chromeHeight

		inputWidth := msg.Width - 8
		if inputWidth < 20 {
			inputWidth = msg.Width
		}
		a.searchInput.Width = inputWidth
		a.emailInput.Width = inputWidth
		a.passwordInput.Width = inputWidth

		// Terminal geometry changed; the page math is stale.
		a.rebuildArticlePages()
		a.refreshCommentsContent()
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case readSetMsg:
		a.readSet = msg.set
		return a, nil

	case feedLoadedMsg:
		if a.view != ViewFeed {
			// The user already navigated away; drop the stale result.
			return a, nil
		}
		a.loading = false
		if msg.err != nil {
			a.feedErr = msg.err
			a.contents = nil
			a.selected = clampIndex(a.selected, 0)
			a.setStatus("Feed unavailable", StatusError)
			return a, nil
		}
		a.feedErr = nil
		a.contents = msg.contents
		a.selected = clampIndex(a.selected, len(a.contents))
		a.setStatus(a.feedLabel(), StatusInfo)
		return a, nil

	case articleLoadedMsg:
		if a.view != ViewArticle {
			// The user already navigated away; drop the stale result.
			return a, nil
		}
		a.loading = false
		a.pageIndex = 0
		if msg.err != nil {
			a.articleErr = msg.err
			a.current = nil
			a.pages = nil
			a.setStatus("Article unavailable", StatusError)
			return a, nil
		}
		a.articleErr = nil
		a.current = msg.content
		a.rebuildArticlePages()
		a.setStatus(msg.content.Key(), StatusInfo)
		return a, a.markContentRead(msg.content)

	case readMarkedMsg:
		if msg.err != nil {
			debuglog.Warnf("mark read failed: %v", msg.err)
			return a, nil
		}
		a.readSet[msg.key] = true
		return a, nil

	case commentsLoadedMsg:
		if a.view != ViewComments {
			return a, nil
		}
		a.loading = false
		a.comments = msg.comments
		a.commentsErr = msg.err
		a.refreshCommentsContent()
		if msg.err == nil {
			a.setStatus(MsgResultsCount(len(msg.comments)), StatusInfo)
		} else {
			a.setStatus("Comments unavailable", StatusError)
		}
		return a, nil

	case loginResultMsg:
		a.loading = false
		if msg.err != nil {
			debuglog.Errorf("login transport failure: %v", msg.err)
		}
		// Failure detail is deliberately not surfaced; the API call reports
		// only a boolean.
		if !msg.ok {
			a.setStatus(MsgLoginFailed, StatusError)
			return a, nil
		}
		a.view = ViewFeed
		a.passwordInput.Reset()
		a.setStatus(MsgLoggedIn, StatusSuccess)
		return a, nil

	case searchResultsMsg:
		if a.view != ViewSearch {
			return a, nil
		}
		if msg.err != nil {
			a.setStatus("Search unavailable", StatusError)
			return a, nil
		}
		a.searchResults = msg.results
		a.searchIndex = clampIndex(a.searchIndex, len(a.searchResults))
		a.setStatus(MsgResultsCount(len(msg.results)), StatusInfo)
		return a, nil

	case errorMsg:
		a.loading = false
		a.setStatus(msg.err.Error(), StatusError)
		return a, nil
	}

	// Everything else flows to the focused component.
	switch a.view {
	case ViewComments:
		var cmd tea.Cmd
		a.commentsView, cmd = a.commentsView.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewFeed:
		content = a.renderFeed()
	case ViewArticle:
		content = a.renderArticle()
	case ViewComments:
		content = a.renderComments()
	case ViewSearch:
		content = a.renderSearch()
	case ViewLogin:
		content = a.renderLogin()
	}

	body := lipgloss.NewStyle().
		Width(a.width).
		Height(a.contentHeight()).
		MaxHeight(a.contentHeight()).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, a.renderHeaderBar(), body, a.renderStatusBar())
}

func (a *App) contentHeight() int {
	h := a.height - chromeHeight
	if h < 1 {
		return 1
	}
	return h
}

func (a *App) contentWidth() int {
	w := a.width - 4
	if w < 10 {
		return 10
	}
	return w
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
}

// canPage reports whether left/right page navigation applies to the active
// feed source. Author feeds always start at page one, and the RSS document
// is a single unpaged snapshot.
func (a *App) canPage() bool {
	return a.author == "" && a.cfg.Feed.Source != "rss"
}

// feedLabel is the header and status description of the active feed source.
func (a *App) feedLabel() string {
	switch {
	case a.author != "":
		return MsgAuthorFeed(a.author)
	case a.cfg.Feed.Source == "rss":
		return MsgRSSFeed
	default:
		return MsgFeedPage(a.page, a.strategy)
	}
}

// rebuildArticlePages recomputes the page list for the open article against
// the current terminal geometry, preserving a clamped page index.
func (a *App) rebuildArticlePages() {
	if a.current == nil {
		return
	}
	a.pages = a.buildArticlePages(a.current)
	a.pageIndex = render.ClampPage(a.pageIndex, len(a.pages))
}

func (a *App) refreshCommentsContent() {
	if a.view != ViewComments && len(a.comments) == 0 && a.commentsErr == nil {
		return
	}
	a.commentsView.SetContent(a.buildCommentsContent())
}

func (a *App) renderHeaderBar() string {
	left := TitleStyle.Render(CompactLogo) + " " + HeaderStyle.Render(a.viewTitle())

	right := ""
	if a.view == ViewFeed && a.feedErr == nil {
		right = renderMuted(a.feedLabel())
	}
	if a.view == ViewArticle && len(a.pages) > 0 {
		right = PageNumberStyle.Render(pageIndicator(a.pageIndex, len(a.pages)))
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

func (a *App) viewTitle() string {
	switch a.view {
	case ViewFeed:
		return "feed"
	case ViewArticle:
		if a.current != nil {
			return truncateEnd(a.current.Title, a.width/2)
		}
		return "article"
	case ViewComments:
		return "comments"
	case ViewSearch:
		return "search"
	case ViewLogin:
		return "login"
	}
	return ""
}

func (a *App) renderStatusBar() string {
	if a.loading {
		return StatusBarStyle.Width(a.width).Render(a.spinner.View() + " " + a.status)
	}

	var left string
	switch a.statusKind {
	case StatusError:
		left = ErrorMessageStyle.Render("✗ " + a.status)
	case StatusWarn:
		left = WarningStyle.Render("! " + a.status)
	case StatusSuccess:
		left = SuccessStyle.Render("✓ " + a.status)
	default:
		left = renderMuted(a.status)
	}

	help := strings.Join(a.keyHandler.GetHelpForCurrentView(), " • ")
	if a.status == "" {
		return StatusBarStyle.Width(a.width).Render(HelpStyle.Render(help))
	}
	return StatusBarStyle.Width(a.width).Render(left + "  " + HelpStyle.Render(help))
}

func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

type readSetMsg struct {
	set map[string]bool
}

type feedLoadedMsg struct {
	contents []api.Content
	err      error
}

type articleLoadedMsg struct {
	content *api.Content
	err     error
}

type commentsLoadedMsg struct {
	comments []api.Comment
	err      error
}

type readMarkedMsg struct {
	key string
	err error
}

type loginResultMsg struct {
	ok  bool
	err error
}

type searchResultsMsg struct {
	results []*search.Result
	err     error
}

type errorMsg struct {
	err error
}
