package search

// Result is a search hit over contents seen this session.
type Result struct {
	OwnerUsername string
	Slug          string
	Title         string
	Score         float64
}

// Key returns the owner/slug pair identifying the matched content.
func (r *Result) Key() string {
	return r.OwnerUsername + "/" + r.Slug
}

// Searcher defines the minimal search API used by the TUI.
type Searcher interface {
	Index(docs []Document) error
	Search(query string, limit int) ([]*Result, error)
	DocCount() (uint64, error)
}

// Document is what gets indexed: feed summaries on every page load, full
// bodies once an article is opened.
type Document struct {
	OwnerUsername string
	Slug          string
	Title         string
	Body          string
}
