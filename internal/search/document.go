// Package search maintains a bleve full-text index over items and answers
// relevance-ranked queries against it.
package search

import (
	"github.com/curatorapp/curator-server/internal/domain"
)

// ItemDocument is the indexed projection of an item. Only the fields the
// ranker needs are indexed; hits are hydrated from the store.
type ItemDocument struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   int64    `json:"created_at"` // Unix millis
}

// NewItemDocument builds the document for an item.
func NewItemDocument(it *domain.Item) *ItemDocument {
	return &ItemDocument{
		ID:          it.ID,
		Kind:        string(it.Kind),
		Name:        it.Name,
		Description: it.Description,
		Tags:        it.Tags,
		CreatedAt:   it.CreatedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map keyed by the mapping's field names.
func (d *ItemDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"kind":       d.Kind,
		"name":       d.Name,
		"created_at": d.CreatedAt,
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	return m
}
