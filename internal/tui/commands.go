package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabnews-cli/tn/internal/api"
	"github.com/tabnews-cli/tn/internal/debuglog"
	"github.com/tabnews-cli/tn/internal/search"
	"github.com/tabnews-cli/tn/internal/validation"
)

const searchResultLimit = 25

// startFeedLoad flips the UI into its loading state and kicks off the fetch.
func (a *App) startFeedLoad() tea.Cmd {
	a.loading = true
	a.status = MsgLoadingFeed
	return tea.Batch(a.loadFeed(), a.spinner.Tick)
}

// loadFeed fetches the current feed page. The command closes over the request
// parameters so a page change mid-flight cannot skew the running fetch.
func (a *App) loadFeed() tea.Cmd {
	page := a.page
	perPage := a.cfg.API.PerPage
	strategy := a.strategy
	author := a.author
	source := a.cfg.Feed.Source

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.API.HTTPTimeout)
		defer cancel()

		var (
			contents []api.Content
			err      error
		)
		switch {
		case author != "":
			contents, err = a.client.ListUserContents(ctx, author, page, perPage, strategy)
		case source == "rss":
			contents, err = a.rss.Fetch(ctx)
		default:
			contents, err = a.client.ListContents(ctx, page, perPage, strategy)
		}
		if err != nil {
			debuglog.Errorf("feed load failed: %v", err)
			return feedLoadedMsg{err: err}
		}

		a.indexContents(contents)
		return feedLoadedMsg{contents: contents}
	}
}

// loadReadSet pulls the persisted read history into memory.
func (a *App) loadReadSet() tea.Cmd {
	return func() tea.Msg {
		set, err := a.store.ReadSet()
		if err != nil {
			debuglog.Warnf("loading read history: %v", err)
			return readSetMsg{set: map[string]bool{}}
		}
		return readSetMsg{set: set}
	}
}

// openArticle switches to the article view and fetches the full content for
// the given feed entry.
func (a *App) openArticle(c api.Content) tea.Cmd {
	return a.openArticleByKey(c.OwnerUsername, c.Slug)
}

// openArticleByKey is the shared entry path for the feed list and search hits.
func (a *App) openArticleByKey(username, slug string) tea.Cmd {
	if err := validation.ValidateUsername(username); err != nil {
		a.setStatus(err.Error(), StatusError)
		return nil
	}
	if err := validation.ValidateSlug(slug); err != nil {
		a.setStatus(err.Error(), StatusError)
		return nil
	}

	a.view = ViewArticle
	a.current = nil
	a.pages = nil
	a.pageIndex = 0
	a.articleErr = nil
	a.loading = true
	a.status = MsgLoadingArticle

	return tea.Batch(a.loadArticle(username, slug), a.spinner.Tick)
}

func (a *App) loadArticle(username, slug string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.API.HTTPTimeout)
		defer cancel()

		content, err := a.client.GetContent(ctx, username, slug)
		if err != nil {
			debuglog.Errorf("article load failed for %s/%s: %v", username, slug, err)
			return articleLoadedMsg{err: wrapErr("loading article", err)}
		}

		// Re-index with the body so searches can now match the full text.
		a.indexContents([]api.Content{*content})
		return articleLoadedMsg{content: content}
	}
}

// openComments switches to the comments view for the open article.
func (a *App) openComments(c *api.Content) tea.Cmd {
	a.view = ViewComments
	a.comments = nil
	a.commentsErr = nil
	a.commentsView.GotoTop()
	a.loading = true
	a.status = MsgLoadingComments

	return tea.Batch(a.loadComments(c.OwnerUsername, c.Slug), a.spinner.Tick)
}

func (a *App) loadComments(username, slug string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.API.HTTPTimeout)
		defer cancel()

		comments, err := a.client.GetComments(ctx, username, slug)
		if err != nil {
			debuglog.Errorf("comments load failed for %s/%s: %v", username, slug, err)
			return commentsLoadedMsg{err: wrapErr("loading comments", err)}
		}
		return commentsLoadedMsg{comments: comments}
	}
}

// markContentRead persists the read mark and reports back so the feed can dim
// the entry.
func (a *App) markContentRead(c *api.Content) tea.Cmd {
	key := c.Key()
	title := c.Title
	return func() tea.Msg {
		err := a.store.MarkRead(key, title)
		return readMarkedMsg{key: key, err: err}
	}
}

// submitLogin validates the form locally, then posts the credentials.
func (a *App) submitLogin() tea.Cmd {
	email := strings.TrimSpace(a.emailInput.Value())
	password := a.passwordInput.Value()

	if err := validation.ValidateEmail(email); err != nil {
		a.setStatus(err.Error(), StatusError)
		a.passwordInput.Blur()
		return a.emailInput.Focus()
	}
	if password == "" {
		a.setStatus("password cannot be empty", StatusError)
		return nil
	}

	a.loading = true
	a.status = MsgLoggingIn
	return tea.Batch(a.login(email, password), a.spinner.Tick)
}

func (a *App) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.API.HTTPTimeout)
		defer cancel()

		ok, err := a.client.Login(ctx, email, password)
		if err != nil {
			return loginResultMsg{ok: false, err: err}
		}
		if ok {
			if saveErr := a.store.SaveToken(a.client.Token()); saveErr != nil {
				debuglog.Warnf("persisting session token: %v", saveErr)
			}
		}
		return loginResultMsg{ok: ok}
	}
}

func (a *App) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		if a.searchEngine == nil {
			return searchResultsMsg{results: []*search.Result{}}
		}
		results, err := a.searchEngine.Search(query, searchResultLimit)
		if err != nil {
			debuglog.Errorf("search failed for %q: %v", query, err)
			return searchResultsMsg{err: err}
		}
		return searchResultsMsg{results: results}
	}
}

func (a *App) openInBrowser(url string) tea.Cmd {
	return func() tea.Msg {
		if err := a.launcher.Open(url); err != nil {
			return errorMsg{err: wrapErr("opening browser", err)}
		}
		return nil
	}
}

// indexContents feeds the session search index. Bleve batches are safe to
// build from command goroutines.
func (a *App) indexContents(contents []api.Content) {
	if a.searchEngine == nil || len(contents) == 0 {
		return
	}

	docs := make([]search.Document, 0, len(contents))
	for _, c := range contents {
		docs = append(docs, search.Document{
			OwnerUsername: c.OwnerUsername,
			Slug:          c.Slug,
			Title:         c.Title,
			Body:          c.Body,
		})
	}
	if err := a.searchEngine.Index(docs); err != nil {
		debuglog.Warnf("indexing %d contents: %v", len(docs), err)
	}
}
