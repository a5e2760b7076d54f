package sqlite

import (
	"context"
	"fmt"

	"github.com/curatorapp/curator-server/internal/domain"
	"github.com/curatorapp/curator-server/internal/store"
)

const reviewColumns = `r.id, r.item_id, r.author_id, r.rating, r.text, r.created_at`

func scanReview(row rowScanner) (*domain.Review, error) {
	var (
		r         domain.Review
		createdAt string
	)
	if err := row.Scan(&r.ID, &r.ItemID, &r.AuthorID, &r.Rating, &r.Text, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateReview inserts a review.
// Returns store.ErrNotFound when the item does not exist.
func (s *Store) CreateReview(ctx context.Context, r *domain.Review) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, item_id, author_id, rating, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.ItemID,
		r.AuthorID,
		r.Rating,
		r.Text,
		formatTime(r.CreatedAt),
	)
	if isForeignKeyViolation(err) {
		return store.ErrNotFound.WithMessage(fmt.Sprintf("item %s not found", r.ItemID))
	}
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ListReviews returns an item's reviews, oldest first.
func (s *Store) ListReviews(ctx context.Context, itemID string) ([]*domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reviewColumns+` FROM reviews r
		WHERE r.item_id = ?
		ORDER BY r.created_at ASC, r.id ASC`,
		itemID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
