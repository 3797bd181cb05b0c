package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/tabnews-cli/tn/internal/api"
)

// DefaultRSSURL is the TabNews recent-contents RSS endpoint, an alternate
// read path to the JSON API.
const DefaultRSSURL = "https://www.tabnews.com.br/recentes/rss"

const fetchTimeout = 30 * time.Second

// RSSSource reads the TabNews RSS endpoint and maps its items onto the same
// Content values the JSON API produces, so the feed view can consume either.
type RSSSource struct {
	parser  *gofeed.Parser
	client  *http.Client
	feedURL string
}

func NewRSSSource(feedURL string, client *http.Client) *RSSSource {
	if feedURL == "" {
		feedURL = DefaultRSSURL
	}
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &RSSSource{
		parser:  gofeed.NewParser(),
		client:  client,
		feedURL: feedURL,
	}
}

// Fetch downloads and parses the RSS feed.
func (s *RSSSource) Fetch(ctx context.Context) ([]api.Content, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rss feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &api.Error{StatusCode: resp.StatusCode, Message: "Unknown error"}
	}

	return s.Parse(resp.Body)
}

// Parse converts an RSS document into content summaries.
func (s *RSSSource) Parse(reader io.Reader) ([]api.Content, error) {
	parsed, err := s.parser.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing rss feed: %w", err)
	}

	contents := make([]api.Content, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		owner, slug := splitContentLink(item.Link)
		if owner == "" || slug == "" {
			continue
		}

		content := api.Content{
			OwnerUsername: owner,
			Slug:          slug,
			Title:         item.Title,
			SourceURL:     item.Link,
		}
		if item.PublishedParsed != nil {
			content.CreatedAt = *item.PublishedParsed
		}
		contents = append(contents, content)
	}
	return contents, nil
}

// splitContentLink extracts owner and slug from a canonical content URL of
// the form https://host/{username}/{slug}.
func splitContentLink(link string) (owner, slug string) {
	u, err := url.Parse(link)
	if err != nil {
		return "", ""
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
