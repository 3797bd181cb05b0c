package tui

import "fmt"

// Canonical short status messages used across the app.
const (
	MsgLoadingFeed     = "Loading feed…"
	MsgLoadingArticle  = "Loading article…"
	MsgLoadingComments = "Loading comments…"
	MsgLoggingIn       = "Logging in…"
	MsgLoggedIn        = "Logged in"
	MsgLoginFailed     = "Login failed"
	MsgSearching       = "Searching…"
	MsgNoComments      = "No comments yet"
	MsgRSSFeed         = "Recent • rss"
)

func MsgFeedPage(page int, strategy string) string {
	return fmt.Sprintf("Page %d • %s", page, strategy)
}

func MsgAuthorFeed(username string) string {
	return fmt.Sprintf("Posts by %s", username)
}

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}
