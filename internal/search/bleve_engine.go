package search

import (
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"
)

type bleveEngine struct {
	idx bleve.Index
}

// NewEngine creates an in-memory Bleve index. The index lives only for the
// session; it fills up as feed pages and articles are fetched.
func NewEngine() (Searcher, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return &bleveEngine{idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true
	title.IncludeTermVectors = true

	body := bleve.NewTextFieldMapping()
	body.Analyzer = standard.Name
	body.Store = false

	owner := bleve.NewTextFieldMapping()
	owner.Analyzer = standard.Name
	owner.Store = true

	slug := bleve.NewTextFieldMapping()
	slug.Analyzer = standard.Name
	slug.Store = true

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("body", body)
	dm.AddFieldMappingsAt("owner", owner)
	dm.AddFieldMappingsAt("slug", slug)

	im.DefaultMapping = dm
	return im
}

func (b *bleveEngine) Index(docs []Document) error {
	batch := b.idx.NewBatch()
	for _, d := range docs {
		if d.OwnerUsername == "" || d.Slug == "" {
			continue
		}
		_ = batch.Index(d.OwnerUsername+"/"+d.Slug, map[string]any{
			"owner": d.OwnerUsername,
			"slug":  d.Slug,
			"title": d.Title,
			"body":  d.Body,
		})
	}
	return b.idx.Batch(batch)
}

func (b *bleveEngine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Result{}, nil
	}

	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []*Result{}, nil
	}

	// OR of per-term matches across fields with boosts, title first.
	var qs []bleveQuery.Query
	for _, tok := range tokens {
		qt := bleve.NewMatchQuery(tok)
		qt.SetField("title")
		qt.SetBoost(4.0)
		qs = append(qs, qt)
		qtp := bleve.NewPrefixQuery(strings.ToLower(tok))
		qtp.SetField("title")
		qtp.SetBoost(3.5)
		qs = append(qs, qtp)

		qb := bleve.NewMatchQuery(tok)
		qb.SetField("body")
		qb.SetBoost(1.0)
		qs = append(qs, qb)
		qbp := bleve.NewPrefixQuery(strings.ToLower(tok))
		qbp.SetField("body")
		qbp.SetBoost(0.8)
		qs = append(qs, qbp)

		qo := bleve.NewMatchQuery(tok)
		qo.SetField("owner")
		qo.SetBoost(2.0)
		qs = append(qs, qo)
	}

	q := bleve.NewDisjunctionQuery(qs...)
	srch := bleve.NewSearchRequestOptions(q, limit, 0, false)
	srch.Fields = []string{"title", "owner", "slug"}

	res, err := b.idx.Search(srch)
	if err != nil {
		return nil, err
	}

	out := make([]*Result, 0, len(res.Hits))
	for _, h := range res.Hits {
		r := &Result{Score: h.Score}
		if t, ok := h.Fields["title"].(string); ok {
			r.Title = t
		}
		if o, ok := h.Fields["owner"].(string); ok {
			r.OwnerUsername = o
		}
		if s, ok := h.Fields["slug"].(string); ok {
			r.Slug = s
		}
		out = append(out, r)
	}
	return out, nil
}

func (b *bleveEngine) DocCount() (uint64, error) {
	return b.idx.DocCount()
}

// tokenize splits a query into lowercase word tokens.
func tokenize(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	var tokens []string
	for _, f := range fields {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
