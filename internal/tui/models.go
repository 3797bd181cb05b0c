package tui

// View is the controller's current top-level screen.
type View int

const (
	ViewFeed View = iota
	ViewArticle
	ViewComments
	ViewSearch
	ViewLogin
)

func (v View) String() string {
	switch v {
	case ViewFeed:
		return "feed"
	case ViewArticle:
		return "article"
	case ViewComments:
		return "comments"
	case ViewSearch:
		return "search"
	case ViewLogin:
		return "login"
	default:
		return "unknown"
	}
}
