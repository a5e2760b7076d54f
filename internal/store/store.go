// Package store defines the persistence contract for the listing core.
package store

import (
	"context"

	"github.com/curatorapp/curator-server/internal/domain"
	"github.com/curatorapp/curator-server/internal/paging"
)

// Store is the persistence contract the services depend on.
// The SQLite implementation lives in store/sqlite.
type Store interface {
	ItemStore
	ReviewStore
	UserStore

	SetSearchIndexer(indexer SearchIndexer)
	Ping(ctx context.Context) error
	Close() error
}

// ItemStore persists items and answers listing queries.
type ItemStore interface {
	// CreateItem inserts an item. Returns ErrAlreadyExists when the
	// (kind, slug) pair is taken.
	CreateItem(ctx context.Context, item *domain.Item) error
	// UpdateItem replaces the mutable fields of an item. Returns ErrNotFound
	// or ErrAlreadyExists.
	UpdateItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	GetItemBySlug(ctx context.Context, kind domain.Kind, slug string) (*domain.Item, error)
	// GetItemsByIDs returns the items that exist, in the order of ids.
	GetItemsByIDs(ctx context.Context, ids []string) ([]*domain.Item, error)
	// ListItems returns one window of a kind, newest first.
	ListItems(ctx context.Context, kind domain.Kind, w paging.Window) ([]*domain.Item, error)
	CountItems(ctx context.Context, kind domain.Kind) (int, error)
	// AllItems returns every item of every kind. Used to rebuild the search index.
	AllItems(ctx context.Context) ([]*domain.Item, error)

	// CountSlugFamily counts items of kind whose slug is base or base-<digits>,
	// ignoring excludeID.
	CountSlugFamily(ctx context.Context, kind domain.Kind, base, excludeID string) (int, error)

	// ListTagCounts returns each distinct tag of kind with the number of
	// items carrying it, most used first, ties by tag ascending.
	ListTagCounts(ctx context.Context, kind domain.Kind) ([]domain.TagCount, error)
	// ListItemsByTag returns items of kind carrying tag. An empty tag matches
	// every item with at least one tag.
	ListItemsByTag(ctx context.Context, kind domain.Kind, tag string) ([]*domain.Item, error)
}

// ReviewStore persists reviews and their aggregates.
type ReviewStore interface {
	// CreateReview inserts a review. Returns ErrNotFound if the item is gone.
	CreateReview(ctx context.Context, review *domain.Review) error
	ListReviews(ctx context.Context, itemID string) ([]*domain.Review, error)
	// TopRated returns items of kind with more than one review, ordered by
	// average rating descending then newest first, reviews attached.
	TopRated(ctx context.Context, kind domain.Kind) ([]domain.RankedItem, error)
}

// UserStore persists users and their favorites.
type UserStore interface {
	// EnsureUser creates the user row on first sight. Existing rows are kept.
	EnsureUser(ctx context.Context, userID, displayName string) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// ToggleFavorite flips the membership of itemID in the user's favorites
	// atomically and returns the updated user.
	ToggleFavorite(ctx context.Context, userID, itemID string) (*domain.User, error)
	// ListFavoriteItems returns the user's favorited items of kind, most
	// recently favorited first. An empty kind returns all kinds.
	ListFavoriteItems(ctx context.Context, userID string, kind domain.Kind) ([]*domain.Item, error)
}

// SearchIndexer keeps the search index in sync with item writes.
// Store calls it after a write commits; a failure is logged, not returned.
type SearchIndexer interface {
	IndexItem(ctx context.Context, item *domain.Item) error
}

// NoopSearchIndexer discards index updates.
type NoopSearchIndexer struct{}

// IndexItem implements SearchIndexer.
func (NoopSearchIndexer) IndexItem(context.Context, *domain.Item) error { return nil }

// NewNoopSearchIndexer returns a SearchIndexer that does nothing.
func NewNoopSearchIndexer() SearchIndexer { return NoopSearchIndexer{} }
