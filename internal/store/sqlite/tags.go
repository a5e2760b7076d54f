package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/curatorapp/curator-server/internal/domain"
)

// ListTagCounts unnests each item's tag array and counts the distinct items
// per tag. An item contributes at most once to a tag even if stored data
// repeats it.
func (s *Store) ListTagCounts(ctx context.Context, kind domain.Kind) ([]domain.TagCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.value, COUNT(DISTINCT i.id) AS n
		FROM items i, json_each(i.tags) t
		WHERE i.kind = ?
		GROUP BY t.value
		ORDER BY n DESC, t.value ASC`,
		string(kind))
	if err != nil {
		return nil, fmt.Errorf("query tag counts: %w", err)
	}
	defer rows.Close()

	counts := []domain.TagCount{}
	for rows.Next() {
		var tc domain.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// ListItemsByTag returns items of kind carrying tag, newest first.
// An empty tag returns every item that has at least one tag.
func (s *Store) ListItemsByTag(ctx context.Context, kind domain.Kind, tag string) ([]*domain.Item, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if tag == "" {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+itemColumns+` FROM items i
			WHERE i.kind = ? AND json_array_length(i.tags) > 0
			ORDER BY i.created_at DESC, i.id ASC`,
			string(kind))
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+itemColumns+` FROM items i
			WHERE i.kind = ?
			  AND EXISTS (SELECT 1 FROM json_each(i.tags) t WHERE t.value = ?)
			ORDER BY i.created_at DESC, i.id ASC`,
			string(kind), tag)
	}
	if err != nil {
		return nil, fmt.Errorf("query items by tag: %w", err)
	}
	return collectItems(rows)
}
