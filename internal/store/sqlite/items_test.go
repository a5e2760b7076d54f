package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/curatorapp/curator-server/internal/domain"
	"github.com/curatorapp/curator-server/internal/paging"
	"github.com/curatorapp/curator-server/internal/store"
)

type recordingIndexer struct {
	indexed []string
}

func (r *recordingIndexer) IndexItem(_ context.Context, it *domain.Item) error {
	r.indexed = append(r.indexed, it.ID)
	return nil
}

func TestCreateItem_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := makeItem(t, s, "hello-world", withTags("wisdom", "life"))

	got, err := s.GetItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.Kind != domain.KindQuote || got.Slug != "hello-world" {
		t.Errorf("unexpected item: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "wisdom" || got.Tags[1] != "life" {
		t.Errorf("tag order not preserved: %v", got.Tags)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, base)
	}

	bySlug, err := s.GetItemBySlug(ctx, domain.KindQuote, "hello-world")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Errorf("slug lookup returned %s, want %s", bySlug.ID, created.ID)
	}

	if _, err := s.GetItemBySlug(ctx, domain.KindStory, "hello-world"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound across kinds, got %v", err)
	}
}

func TestCreateItem_DuplicateSlugPerKind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeItem(t, s, "dup")
	// Same slug in another kind is fine.
	makeItem(t, s, "dup", withKind(domain.KindStory))

	err := s.CreateItem(ctx, &domain.Item{
		ID: "item-x", Kind: domain.KindQuote, Name: "dup", Slug: "dup", AuthorID: "u",
		CreatedAt: base, UpdatedAt: base,
	})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateItem_NotifiesIndexer(t *testing.T) {
	s := newTestStore(t)
	idx := &recordingIndexer{}
	s.SetSearchIndexer(idx)

	it := makeItem(t, s, "indexed")
	it.Name = "renamed"
	it.UpdatedAt = base.Add(time.Minute)
	if err := s.UpdateItem(context.Background(), it); err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(idx.indexed) != 2 || idx.indexed[0] != it.ID || idx.indexed[1] != it.ID {
		t.Errorf("expected two index calls for %s, got %v", it.ID, idx.indexed)
	}
}

func TestUpdateItem_NotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateItem(context.Background(), &domain.Item{ID: "item-missing", Slug: "x", UpdatedAt: base})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateItem_KeepsImmutableFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	it := makeItem(t, s, "original")

	changed := *it
	changed.Name = "Changed"
	changed.Slug = "changed"
	changed.AuthorID = "someone-else"
	changed.CreatedAt = base.Add(time.Hour)
	changed.UpdatedAt = base.Add(time.Hour)
	if err := s.UpdateItem(ctx, &changed); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.GetItem(ctx, it.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Slug != "changed" || got.Name != "Changed" {
		t.Errorf("mutable fields not written: %+v", got)
	}
	if got.AuthorID != "user-author" || !got.CreatedAt.Equal(base) {
		t.Errorf("immutable fields changed: author=%s created=%v", got.AuthorID, got.CreatedAt)
	}
}

func TestListItems_PagesNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// 45 quotes, item i created i minutes after base, plus noise of another kind.
	for i := range 45 {
		makeItem(t, s, "q-"+string(rune('a'+i/26))+string(rune('a'+i%26)), createdAt(time.Duration(i)*time.Minute))
	}
	makeItem(t, s, "story", withKind(domain.KindStory))

	count, err := s.CountItems(ctx, domain.KindQuote)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 45 {
		t.Fatalf("count = %d, want 45", count)
	}

	first, err := s.ListItems(ctx, domain.KindQuote, paging.NewWindow(1, 20))
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(first) != 20 {
		t.Fatalf("page 1 len = %d, want 20", len(first))
	}
	if !first[0].CreatedAt.Equal(base.Add(44 * time.Minute)) {
		t.Errorf("page 1 should start with newest, got %v", first[0].CreatedAt)
	}

	third, err := s.ListItems(ctx, domain.KindQuote, paging.NewWindow(3, 20))
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(third) != 5 {
		t.Errorf("page 3 len = %d, want 5", len(third))
	}

	fourth, err := s.ListItems(ctx, domain.KindQuote, paging.NewWindow(4, 20))
	if err != nil {
		t.Fatalf("page 4: %v", err)
	}
	if len(fourth) != 0 {
		t.Errorf("page 4 len = %d, want 0", len(fourth))
	}
}

func TestGetItemsByIDs_PreservesOrderSkipsMissing(t *testing.T) {
	s := newTestStore(t)
	a := makeItem(t, s, "a")
	b := makeItem(t, s, "b")

	got, err := s.GetItemsByIDs(context.Background(), []string{b.ID, "item-gone", a.ID})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(got) != 2 || got[0].ID != b.ID || got[1].ID != a.ID {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestCountSlugFamily(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, v := range []string{"wes", "wes-2", "wes-3", "wesley", "wes-x", "wes_2"} {
		makeItem(t, s, v)
	}
	makeItem(t, s, "wes-4", withKind(domain.KindStory))

	n, err := s.CountSlugFamily(ctx, domain.KindQuote, "wes", "")
	if err != nil {
		t.Fatalf("count family: %v", err)
	}
	if n != 3 {
		t.Errorf("family count = %d, want 3", n)
	}

	empty, err := s.CountSlugFamily(ctx, domain.KindQuote, "nobody", "")
	if err != nil {
		t.Fatalf("count empty family: %v", err)
	}
	if empty != 0 {
		t.Errorf("empty family count = %d, want 0", empty)
	}
}

func TestCountSlugFamily_ExcludesSelf(t *testing.T) {
	s := newTestStore(t)
	it := makeItem(t, s, "solo")

	n, err := s.CountSlugFamily(context.Background(), domain.KindQuote, "solo", it.ID)
	if err != nil {
		t.Fatalf("count family: %v", err)
	}
	if n != 0 {
		t.Errorf("family count = %d, want 0 when excluding self", n)
	}
}
