package api

import (
	"time"
)

// Content is a TabNews content item. List endpoints return it without a
// body; GetContent returns the full item.
type Content struct {
	ID                string    `json:"id"`
	OwnerUsername     string    `json:"owner_username"`
	Slug              string    `json:"slug"`
	Title             string    `json:"title"`
	Body              string    `json:"body,omitempty"`
	Status            string    `json:"status"`
	SourceURL         string    `json:"source_url"`
	CreatedAt         time.Time `json:"created_at"`
	PublishedAt       time.Time `json:"published_at"`
	Tabcoins          int       `json:"tabcoins"`
	ChildrenDeepCount int       `json:"children_deep_count"`
}

// Key identifies a content item uniquely; slugs are scoped per owner.
func (c *Content) Key() string {
	return c.OwnerUsername + "/" + c.Slug
}

// CanonicalURL is the content's address on the site itself (not the API).
func (c *Content) CanonicalURL(siteURL string) string {
	return siteURL + "/" + c.OwnerUsername + "/" + c.Slug
}

// Comment is a child content of an article. TabNews models comments as
// contents without a title.
type Comment struct {
	ID            string    `json:"id"`
	OwnerUsername string    `json:"owner_username"`
	Slug          string    `json:"slug"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
	Tabcoins      int       `json:"tabcoins"`
}
