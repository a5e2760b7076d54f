package sqlite

import (
	"context"
	"fmt"

	"github.com/curatorapp/curator-server/internal/domain"
)

// topRatedQuery ranks items with more than one review by mean rating and
// returns one row per (item, review) so a single statement yields both the
// ranking and the attached reviews. Rows of the same item are contiguous.
const topRatedQuery = `
	WITH ranked AS (
		SELECT item_id, AVG(rating) AS avg_rating
		FROM reviews
		GROUP BY item_id
		HAVING COUNT(*) > 1
	)
	SELECT ` + itemColumns + `, ranked.avg_rating, ` + reviewColumns + `
	FROM ranked
	JOIN items i ON i.id = ranked.item_id
	JOIN reviews r ON r.item_id = i.id
	WHERE i.kind = ?
	ORDER BY ranked.avg_rating DESC, i.created_at DESC, i.id ASC, r.created_at ASC, r.id ASC`

// TopRated returns items of kind having at least two reviews, ordered by
// average rating descending with newer items first on ties.
func (s *Store) TopRated(ctx context.Context, kind domain.Kind) ([]domain.RankedItem, error) {
	rows, err := s.db.QueryContext(ctx, topRatedQuery, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query top rated: %w", err)
	}
	defer rows.Close()

	ranked := []domain.RankedItem{}
	for rows.Next() {
		var (
			itemID, itemKind, name, itemSlug, desc, tags, photo, author string
			itemCreated, itemUpdated                                   string
			avg                                                        float64
			reviewCreated                                              string
			rv                                                         domain.Review
		)
		err := rows.Scan(
			&itemID, &itemKind, &name, &itemSlug, &desc, &tags, &photo, &author, &itemCreated, &itemUpdated,
			&avg,
			&rv.ID, &rv.ItemID, &rv.AuthorID, &rv.Rating, &rv.Text, &reviewCreated,
		)
		if err != nil {
			return nil, err
		}
		if rv.CreatedAt, err = parseTime(reviewCreated); err != nil {
			return nil, err
		}

		if n := len(ranked); n == 0 || ranked[n-1].ID != itemID {
			it := domain.Item{
				ID:          itemID,
				Kind:        domain.Kind(itemKind),
				Name:        name,
				Slug:        itemSlug,
				Description: desc,
				Photo:       photo,
				AuthorID:    author,
			}
			if it.Tags, err = decodeTags(tags); err != nil {
				return nil, err
			}
			if it.CreatedAt, err = parseTime(itemCreated); err != nil {
				return nil, err
			}
			if it.UpdatedAt, err = parseTime(itemUpdated); err != nil {
				return nil, err
			}
			ranked = append(ranked, domain.RankedItem{Item: it, AverageRating: avg})
		}
		last := &ranked[len(ranked)-1]
		last.Reviews = append(last.Reviews, &rv)
	}
	return ranked, rows.Err()
}
