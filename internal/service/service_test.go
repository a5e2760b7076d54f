package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/curatorapp/curator-server/internal/domain"
	"github.com/curatorapp/curator-server/internal/logger"
	"github.com/curatorapp/curator-server/internal/search"
	"github.com/curatorapp/curator-server/internal/store/sqlite"
	"github.com/curatorapp/curator-server/internal/validation"
)

type testEnv struct {
	store     *sqlite.Store
	index     *search.Index
	items     *ItemService
	listing   *ListingService
	search    *SearchService
	ratings   *RatingService
	favorites *FavoriteService
	reviews   *ReviewService
}

func discardLogger() *slog.Logger {
	return logger.Discard().Logger
}

// fakeClock hands out strictly increasing timestamps so creation order is
// deterministic.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := discardLogger()
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "curator.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	idx, err := search.Open(search.Options{InMemory: true, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	v := validation.New()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	env := &testEnv{
		store:     st,
		index:     idx,
		items:     NewItemService(st, v, logger),
		listing:   NewListingService(st, 20, logger),
		search:    NewSearchService(idx, st, logger),
		ratings:   NewRatingService(st, logger),
		favorites: NewFavoriteService(st, logger),
		reviews:   NewReviewService(st, v, logger),
	}
	env.items.now = clock.now
	env.reviews.now = clock.now
	st.SetSearchIndexer(env.search)
	return env
}

func (e *testEnv) createItem(t *testing.T, actor string, kind domain.Kind, name string, tags ...string) *domain.Item {
	t.Helper()
	it, err := e.items.Create(context.Background(), actor, kind, ItemInput{
		Name:        name,
		Description: "about " + name,
		Tags:        tags,
	})
	require.NoError(t, err)
	return it
}

func (e *testEnv) review(t *testing.T, actor, itemID string, rating int) {
	t.Helper()
	_, err := e.reviews.Add(context.Background(), actor, itemID, ReviewInput{Rating: rating, Text: "noted"})
	require.NoError(t, err)
}
