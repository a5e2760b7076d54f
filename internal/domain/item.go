// Package domain defines the core entities of the Curator listing service.
package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Kind discriminates the item families that share one table and one set of queries.
type Kind string

const (
	// KindQuote is a short quotation entry.
	KindQuote Kind = "quote"
	// KindStory is a longer narrative entry.
	KindStory Kind = "story"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindQuote, KindStory}

// ParseKind accepts either the singular kind ("quote") or the plural
// collection name used in URLs ("quotes", "stories").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quote", "quotes":
		return KindQuote, nil
	case "story", "stories":
		return KindStory, nil
	default:
		return "", fmt.Errorf("unknown item kind %q", s)
	}
}

// Plural returns the collection name for the kind ("quotes", "stories").
func (k Kind) Plural() string {
	switch k {
	case KindStory:
		return "stories"
	default:
		return string(k) + "s"
	}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return slices.Contains(Kinds, k)
}

// Item is a named, tagged entry submitted by a user.
// Reviews are never embedded on write; they are only populated by reads
// that explicitly ask for them.
type Item struct {
	CreatedAt   time.Time `json:"created_at"` // Set once on create
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"` // Unique per kind
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags"` // Set semantics, insertion order kept for display
	Photo       string    `json:"photo,omitempty"`
	AuthorID    string    `json:"author_id"` // Immutable after create
	Reviews     []*Review `json:"reviews,omitempty"`
}

// IsOwnedBy reports whether userID authored the item.
func (i *Item) IsOwnedBy(userID string) bool {
	return userID != "" && i.AuthorID == userID
}

// NormalizeTags trims each tag, drops empties, and removes duplicates while
// keeping first-seen order. A tag therefore counts at most once per item.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
