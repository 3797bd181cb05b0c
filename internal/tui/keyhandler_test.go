package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabnews-cli/tn/internal/search"
)

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		app := newTestApp(t)
		cmd := press(app, key)
		require.NotNil(t, cmd, "key %q should quit", key)
		assert.Equal(t, tea.Quit(), cmd(), "key %q should quit", key)
	}
}

func TestAuthorFilterKey(t *testing.T) {
	app := newTestApp(t)
	app.contents = sampleContents(3)
	app.selected = 1

	cmd := press(app, "a")

	require.NotNil(t, cmd)
	assert.Equal(t, "author", app.author)
	assert.Equal(t, 0, app.selected)
	assert.True(t, app.loading)
}

func TestAuthorFilterStartsAtPageOne(t *testing.T) {
	app := newTestApp(t)
	app.contents = sampleContents(3)
	app.page = 3

	cmd := press(app, "a")

	require.NotNil(t, cmd)
	assert.Equal(t, "author", app.author)
	assert.Equal(t, 1, app.page, "the author's feed is its own sequence")
}

func TestClearingAuthorFilterRestoresPage(t *testing.T) {
	app := newTestApp(t)
	app.contents = sampleContents(3)
	app.page = 3

	press(app, "a")
	require.Equal(t, 1, app.page)

	cmd := press(app, "esc")

	require.NotNil(t, cmd)
	assert.Empty(t, app.author)
	assert.Equal(t, 3, app.page, "backing out returns to the site-wide page")
}

func TestAuthorFilterKeyOnEmptyFeed(t *testing.T) {
	app := newTestApp(t)

	assert.Nil(t, press(app, "a"))
	assert.Empty(t, app.author)
}

func TestSearchChordWarnsWhenEngineUnavailable(t *testing.T) {
	app := newTestApp(t)
	app.searchEngine = nil

	press(app, "ctrl+s")

	assert.Equal(t, ViewFeed, app.view)
	assert.Equal(t, StatusWarn, app.statusKind)
	assert.Contains(t, app.renderStatusBar(), "Search unavailable")
}

func TestSearchChordEntersSearchView(t *testing.T) {
	app := newTestApp(t)
	app.contents = sampleContents(3)

	press(app, "ctrl+s")

	assert.Equal(t, ViewSearch, app.view)
	assert.Equal(t, ViewFeed, app.previousView)
	assert.True(t, app.searchInput.Focused())
}

func TestSearchEscReturnsToPreviousView(t *testing.T) {
	app := newTestApp(t)
	app.view = ViewArticle
	app.current = nil
	app.pages = []string{"page"}

	press(app, "ctrl+s")
	require.Equal(t, ViewSearch, app.view)

	press(app, "esc")
	assert.Equal(t, ViewArticle, app.view)
}

func TestSearchEnterRunsQuery(t *testing.T) {
	app := newTestApp(t)
	press(app, "ctrl+s")

	app.searchInput.SetValue("golang")
	cmd := press(app, "enter")

	require.NotNil(t, cmd)
	assert.False(t, app.searchInput.Focused(), "focus moves to the result list")
	assert.Equal(t, MsgSearching, app.status)
}

func TestSearchResultNavigation(t *testing.T) {
	app := newTestApp(t)
	app.view = ViewSearch
	app.searchInput.Blur()
	app.searchResults = []*search.Result{
		{OwnerUsername: "a", Slug: "one", Title: "One"},
		{OwnerUsername: "b", Slug: "two", Title: "Two"},
	}

	press(app, "down")
	assert.Equal(t, 1, app.searchIndex)
	press(app, "down")
	assert.Equal(t, 1, app.searchIndex)
	press(app, "up")
	assert.Equal(t, 0, app.searchIndex)

	cmd := press(app, "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, ViewArticle, app.view)
}

func TestLoginChordEntersLoginView(t *testing.T) {
	app := newTestApp(t)

	press(app, "ctrl+l")

	assert.Equal(t, ViewLogin, app.view)
	assert.True(t, app.emailInput.Focused())
}

func TestLoginChordWithTokenShortCircuits(t *testing.T) {
	app := newTestApp(t)
	app.client.SetToken("existing")

	press(app, "ctrl+l")

	assert.Equal(t, ViewFeed, app.view)
	assert.Equal(t, MsgLoggedIn, app.status)
}

func TestLoginTabSwitchesFields(t *testing.T) {
	app := newTestApp(t)
	press(app, "ctrl+l")
	require.True(t, app.emailInput.Focused())

	press(app, "tab")
	assert.False(t, app.emailInput.Focused())
	assert.True(t, app.passwordInput.Focused())

	press(app, "tab")
	assert.True(t, app.emailInput.Focused())
}

func TestLoginEnterOnEmailAdvances(t *testing.T) {
	app := newTestApp(t)
	press(app, "ctrl+l")

	press(app, "enter")

	assert.True(t, app.passwordInput.Focused())
	assert.Equal(t, ViewLogin, app.view)
}

func TestLoginSubmitRejectsBadEmail(t *testing.T) {
	app := newTestApp(t)
	press(app, "ctrl+l")
	app.emailInput.SetValue("not-an-email")
	app.passwordInput.SetValue("hunter2")
	press(app, "tab")

	press(app, "enter")

	assert.Equal(t, ViewLogin, app.view)
	assert.False(t, app.loading)
	assert.Equal(t, StatusError, app.statusKind)
}

func TestLoginSubmitStartsRequest(t *testing.T) {
	app := newTestApp(t)
	press(app, "ctrl+l")
	app.emailInput.SetValue("reader@example.com")
	app.passwordInput.SetValue("hunter2")
	press(app, "tab")

	cmd := press(app, "enter")

	require.NotNil(t, cmd)
	assert.True(t, app.loading)
	assert.Equal(t, MsgLoggingIn, app.status)
}

func TestLoginEscCancels(t *testing.T) {
	app := newTestApp(t)
	press(app, "ctrl+l")
	app.passwordInput.SetValue("secret")

	press(app, "esc")

	assert.Equal(t, ViewFeed, app.view)
	assert.Empty(t, app.passwordInput.Value(), "the password field is wiped on cancel")
}

func TestTypingGoesToFocusedInput(t *testing.T) {
	app := newTestApp(t)
	press(app, "ctrl+s")

	press(app, "g")
	press(app, "o")

	assert.Equal(t, "go", app.searchInput.Value())
}

func TestHelpVariesByView(t *testing.T) {
	app := newTestApp(t)
	kh := app.keyHandler

	app.view = ViewFeed
	feedHelp := kh.GetHelpForCurrentView()
	app.view = ViewArticle
	articleHelp := kh.GetHelpForCurrentView()

	assert.NotEqual(t, feedHelp, articleHelp)
	assert.Contains(t, articleHelp, "esc back")
}
