package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// nameBoost weighs name matches above description matches.
const nameBoost = 2.0

// Hit is one ranked match.
type Hit struct {
	ID    string
	Score float64
}

// Search returns every document of kind matching text, best score first.
// Blank text returns no hits.
func (s *Index) Search(ctx context.Context, kind, text string) ([]Hit, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []Hit{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	total, err := s.index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if total == 0 {
		return []Hit{}, nil
	}

	req := bleve.NewSearchRequestOptions(buildQuery(kind, text), int(total), 0, false)
	req.SortBy([]string{"-_score", "-created_at", "_id"})

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{ID: h.ID, Score: h.Score})
	}
	return hits, nil
}

// buildQuery matches text against name or description, restricted to kind.
func buildQuery(kind, text string) query.Query {
	name := bleve.NewMatchQuery(text)
	name.SetField("name")
	name.SetBoost(nameBoost)

	desc := bleve.NewMatchQuery(text)
	desc.SetField("description")

	textQuery := bleve.NewDisjunctionQuery(name, desc)
	if kind == "" {
		return textQuery
	}

	kindQuery := bleve.NewTermQuery(kind)
	kindQuery.SetField("kind")
	return bleve.NewConjunctionQuery(textQuery, kindQuery)
}
