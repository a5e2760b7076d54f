package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curatorapp/curator-server/internal/domain"
)

// setupTestIndex opens an on-disk index in a temp directory.
func setupTestIndex(t *testing.T) *Index {
	t.Helper()

	idx, err := Open(Options{DataPath: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func putItems(t *testing.T, idx *Index, items ...*domain.Item) {
	t.Helper()
	docs := make([]*ItemDocument, 0, len(items))
	for _, it := range items {
		docs = append(docs, NewItemDocument(it))
	}
	require.NoError(t, idx.PutAll(docs))
}

func item(id string, kind domain.Kind, name, desc string) *domain.Item {
	return &domain.Item{
		ID:          id,
		Kind:        kind,
		Name:        name,
		Description: desc,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func hitIDs(hits []Hit) []string {
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	return ids
}

func TestOpen_Empty(t *testing.T) {
	idx := setupTestIndex(t)

	count, err := idx.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestOpen_ReopensExisting(t *testing.T) {
	dir := t.TempDir()

	idx, err := Open(Options{DataPath: dir})
	require.NoError(t, err)
	putItems(t, idx, item("item-1", domain.KindQuote, "Stay hungry", ""))
	require.NoError(t, idx.Close())

	reopened, err := Open(Options{DataPath: dir})
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestOpen_StaleMappingVersionRecreates(t *testing.T) {
	dir := t.TempDir()

	idx, err := Open(Options{DataPath: dir})
	require.NoError(t, err)
	putItems(t, idx, item("item-1", domain.KindQuote, "Stay hungry", ""))
	require.NoError(t, idx.Close())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.version"), []byte("0"), 0o644))

	reopened, err := Open(Options{DataPath: dir})
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearch_RanksNameAboveDescription(t *testing.T) {
	idx := setupTestIndex(t)
	putItems(t, idx,
		item("item-desc", domain.KindQuote, "Morning thoughts", "a line about courage in the face of doubt"),
		item("item-name", domain.KindQuote, "Courage", "short"),
		item("item-none", domain.KindQuote, "Unrelated", "nothing to see"),
	)

	hits, err := idx.Search(context.Background(), "quote", "courage")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, []string{"item-name", "item-desc"}, hitIDs(hits))
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestSearch_StemsEnglish(t *testing.T) {
	idx := setupTestIndex(t)
	putItems(t, idx, item("item-1", domain.KindStory, "Running with wolves", ""))

	hits, err := idx.Search(context.Background(), "story", "run")
	require.NoError(t, err)
	assert.Equal(t, []string{"item-1"}, hitIDs(hits))
}

func TestSearch_FiltersByKind(t *testing.T) {
	idx := setupTestIndex(t)
	putItems(t, idx,
		item("item-q", domain.KindQuote, "Ocean", ""),
		item("item-s", domain.KindStory, "Ocean", ""),
	)

	hits, err := idx.Search(context.Background(), "story", "ocean")
	require.NoError(t, err)
	assert.Equal(t, []string{"item-s"}, hitIDs(hits))
}

func TestSearch_NoMatchIsEmptyNotError(t *testing.T) {
	idx := setupTestIndex(t)
	putItems(t, idx, item("item-1", domain.KindQuote, "Ocean", ""))

	for _, q := range []string{"xyzzy", "", "   "} {
		hits, err := idx.Search(context.Background(), "quote", q)
		require.NoError(t, err, "query %q", q)
		assert.NotNil(t, hits)
		assert.Empty(t, hits, "query %q", q)
	}
}

func TestSearch_ReturnsWholeResultSet(t *testing.T) {
	idx := setupTestIndex(t)
	var items []*domain.Item
	for i := range 30 {
		items = append(items, item("item-"+string(rune('a'+i%26))+string(rune('a'+i/26)), domain.KindQuote, "Sunrise", ""))
	}
	putItems(t, idx, items...)

	hits, err := idx.Search(context.Background(), "quote", "sunrise")
	require.NoError(t, err)
	assert.Len(t, hits, 30)
}

func TestPut_ReplacesDocument(t *testing.T) {
	idx := setupTestIndex(t)
	it := item("item-1", domain.KindQuote, "Old name", "")
	putItems(t, idx, it)

	it.Name = "Fresh name"
	require.NoError(t, idx.Put(NewItemDocument(it)))

	old, err := idx.Search(context.Background(), "quote", "old")
	require.NoError(t, err)
	assert.Empty(t, old)

	fresh, err := idx.Search(context.Background(), "quote", "fresh")
	require.NoError(t, err)
	assert.Equal(t, []string{"item-1"}, hitIDs(fresh))
}

func TestReset(t *testing.T) {
	for _, inMemory := range []bool{false, true} {
		idx, err := Open(Options{DataPath: t.TempDir(), InMemory: inMemory})
		require.NoError(t, err)

		putItems(t, idx, item("item-1", domain.KindQuote, "Ocean", ""))
		require.NoError(t, idx.Reset())

		count, err := idx.DocumentCount()
		require.NoError(t, err)
		assert.Equal(t, uint64(0), count)
		require.NoError(t, idx.Close())
	}
}
