package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/curatorapp/curator-server/internal/domain"
)

func TestTopRated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// A: [5,5] avg 5, B: [5,3] avg 4, C: [5] excluded, D: none.
	a := makeItem(t, s, "a")
	b := makeItem(t, s, "b", createdAt(time.Hour))
	c := makeItem(t, s, "c")
	makeItem(t, s, "d")

	addReview(t, s, a.ID, 5, 0)
	addReview(t, s, a.ID, 5, time.Minute)
	addReview(t, s, b.ID, 5, 0)
	addReview(t, s, b.ID, 3, time.Minute)
	addReview(t, s, c.ID, 5, 0)

	got, err := s.TopRated(ctx, domain.KindQuote)
	if err != nil {
		t.Fatalf("top rated: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	if got[0].ID != a.ID || got[0].AverageRating != 5 {
		t.Errorf("first = %s avg %v, want %s avg 5", got[0].ID, got[0].AverageRating, a.ID)
	}
	if got[1].ID != b.ID || got[1].AverageRating != 4 {
		t.Errorf("second = %s avg %v, want %s avg 4", got[1].ID, got[1].AverageRating, b.ID)
	}
	for _, r := range got {
		if len(r.Reviews) != 2 {
			t.Errorf("%s has %d reviews attached, want 2", r.ID, len(r.Reviews))
		}
		for _, rv := range r.Reviews {
			if rv.ItemID != r.ID {
				t.Errorf("review %s attached to wrong item %s", rv.ID, r.ID)
			}
		}
	}
}

func TestTopRated_TiesNewestFirst(t *testing.T) {
	s := newTestStore(t)

	old := makeItem(t, s, "old")
	recent := makeItem(t, s, "recent", createdAt(time.Hour))
	for _, it := range []*domain.Item{old, recent} {
		addReview(t, s, it.ID, 4, 0)
		addReview(t, s, it.ID, 4, time.Minute)
	}

	got, err := s.TopRated(context.Background(), domain.KindQuote)
	if err != nil {
		t.Fatalf("top rated: %v", err)
	}
	if len(got) != 2 || got[0].ID != recent.ID || got[1].ID != old.ID {
		t.Errorf("tie should order newest first, got %v", got)
	}
}

func TestTopRated_ScopedToKind(t *testing.T) {
	s := newTestStore(t)
	story := makeItem(t, s, "tale", withKind(domain.KindStory))
	addReview(t, s, story.ID, 3, 0)
	addReview(t, s, story.ID, 3, time.Minute)

	quotes, err := s.TopRated(context.Background(), domain.KindQuote)
	if err != nil {
		t.Fatalf("top rated: %v", err)
	}
	if len(quotes) != 0 {
		t.Errorf("expected no quotes, got %v", quotes)
	}
}
