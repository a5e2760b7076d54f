package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the mapping for item documents.
//
//	name, description - English analyzer (stemming, stop words)
//	kind, id, tags    - keyword, exact match only
//	created_at        - numeric, for recency tie-breaks
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	doc := bleve.NewDocumentMapping()

	name := bleve.NewTextFieldMapping()
	name.Analyzer = en.AnalyzerName
	name.Store = true
	doc.AddFieldMappingsAt("name", name)

	// Searchable, not stored; the store has the text.
	desc := bleve.NewTextFieldMapping()
	desc.Analyzer = en.AnalyzerName
	desc.Store = false
	doc.AddFieldMappingsAt("description", desc)

	for _, field := range []string{"id", "kind", "tags"} {
		kw := bleve.NewTextFieldMapping()
		kw.Analyzer = keyword.Name
		kw.IncludeInAll = false
		doc.AddFieldMappingsAt(field, kw)
	}

	created := bleve.NewNumericFieldMapping()
	created.Store = true
	created.IncludeInAll = false
	doc.AddFieldMappingsAt("created_at", created)

	indexMapping.AddDocumentMapping("_default", doc)
	return indexMapping
}
