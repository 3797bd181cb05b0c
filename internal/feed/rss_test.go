package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>TabNews</title>
    <link>https://www.tabnews.com.br</link>
    <item>
      <title>Primeiro post</title>
      <link>https://www.tabnews.com.br/alice/primeiro-post</link>
      <pubDate>Mon, 05 Jan 2026 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Segundo post</title>
      <link>https://www.tabnews.com.br/bob/segundo-post</link>
      <pubDate>Tue, 06 Jan 2026 11:30:00 GMT</pubDate>
    </item>
    <item>
      <title>Link estranho</title>
      <link>https://www.tabnews.com.br/somente-um-segmento</link>
    </item>
  </channel>
</rss>`

func TestParse_MapsItemsToContents(t *testing.T) {
	source := NewRSSSource("", nil)

	contents, err := source.Parse(strings.NewReader(sampleRSS))
	require.NoError(t, err)
	require.Len(t, contents, 2, "items without owner/slug links are skipped")

	assert.Equal(t, "alice", contents[0].OwnerUsername)
	assert.Equal(t, "primeiro-post", contents[0].Slug)
	assert.Equal(t, "Primeiro post", contents[0].Title)
	assert.Equal(t, 2026, contents[0].CreatedAt.Year())

	assert.Equal(t, "bob/segundo-post", contents[1].Key())
}

func TestParse_RejectsInvalidDocument(t *testing.T) {
	source := NewRSSSource("", nil)

	_, err := source.Parse(strings.NewReader("not xml at all"))
	assert.Error(t, err)
}

func TestFetch_UsesConfiguredURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recentes/rss", r.URL.Path)
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer ts.Close()

	source := NewRSSSource(ts.URL+"/recentes/rss", ts.Client())
	contents, err := source.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, contents, 2)
}

func TestFetch_HTTPErrorSurfacesStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	source := NewRSSSource(ts.URL, ts.Client())
	_, err := source.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestSplitContentLink(t *testing.T) {
	tests := []struct {
		link  string
		owner string
		slug  string
	}{
		{"https://www.tabnews.com.br/alice/meu-post", "alice", "meu-post"},
		{"https://www.tabnews.com.br/alice/meu-post/", "alice", "meu-post"},
		{"https://www.tabnews.com.br/alice", "", ""},
		{"https://www.tabnews.com.br/a/b/c", "", ""},
		{"", "", ""},
	}

	for _, tc := range tests {
		owner, slug := splitContentLink(tc.link)
		assert.Equal(t, tc.owner, owner, tc.link)
		assert.Equal(t, tc.slug, slug, tc.link)
	}
}
