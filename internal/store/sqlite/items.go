package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/curatorapp/curator-server/internal/domain"
	"github.com/curatorapp/curator-server/internal/paging"
	"github.com/curatorapp/curator-server/internal/slug"
	"github.com/curatorapp/curator-server/internal/store"
)

// itemColumns must match the scan order in scanItem.
const itemColumns = `i.id, i.kind, i.name, i.slug, i.description, i.tags, i.photo, i.author_id, i.created_at, i.updated_at`

func scanItem(row rowScanner) (*domain.Item, error) {
	var (
		it                   domain.Item
		kind, tags           string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&it.ID,
		&kind,
		&it.Name,
		&it.Slug,
		&it.Description,
		&tags,
		&it.Photo,
		&it.AuthorID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	it.Kind = domain.Kind(kind)
	if it.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	if it.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if it.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

func collectItems(rows *sql.Rows) ([]*domain.Item, error) {
	defer rows.Close()

	items := []*domain.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CreateItem inserts a new item.
// Returns store.ErrAlreadyExists if the slug is taken within the kind.
func (s *Store) CreateItem(ctx context.Context, it *domain.Item) error {
	tags, err := encodeTags(it.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO items (id, kind, name, slug, description, tags, photo, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID,
		string(it.Kind),
		it.Name,
		it.Slug,
		it.Description,
		tags,
		it.Photo,
		it.AuthorID,
		formatTime(it.CreatedAt),
		formatTime(it.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("slug %q already exists", it.Slug))
	}
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	s.indexItem(ctx, it)
	return nil
}

// UpdateItem writes the mutable fields of an item. Kind, author, and
// creation time are fixed at create.
func (s *Store) UpdateItem(ctx context.Context, it *domain.Item) error {
	tags, err := encodeTags(it.Tags)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE items
		SET name = ?, slug = ?, description = ?, tags = ?, photo = ?, updated_at = ?
		WHERE id = ?`,
		it.Name,
		it.Slug,
		it.Description,
		tags,
		it.Photo,
		formatTime(it.UpdatedAt),
		it.ID,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("slug %q already exists", it.Slug))
	}
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}

	s.indexItem(ctx, it)
	return nil
}

// GetItem retrieves an item by ID.
func (s *Store) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items i WHERE i.id = ?`, id)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// GetItemBySlug retrieves an item by its slug within a kind.
func (s *Store) GetItemBySlug(ctx context.Context, kind domain.Kind, slug string) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items i WHERE i.kind = ? AND i.slug = ?`, string(kind), slug)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// GetItemsByIDs returns the items that exist, ordered as ids. Missing IDs
// are skipped.
func (s *Store) GetItemsByIDs(ctx context.Context, ids []string) ([]*domain.Item, error) {
	if len(ids) == 0 {
		return []*domain.Item{}, nil
	}

	args := make([]any, len(ids))
	for i, v := range ids {
		args[i] = v
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items i WHERE i.id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query items by id: %w", err)
	}
	found, err := collectItems(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Item, len(found))
	for _, it := range found {
		byID[it.ID] = it
	}
	ordered := make([]*domain.Item, 0, len(found))
	for _, v := range ids {
		if it, ok := byID[v]; ok {
			ordered = append(ordered, it)
		}
	}
	return ordered, nil
}

// ListItems returns one window of a kind, newest first.
func (s *Store) ListItems(ctx context.Context, kind domain.Kind, w paging.Window) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM items i
		WHERE i.kind = ?
		ORDER BY i.created_at DESC, i.id ASC
		LIMIT ? OFFSET ?`,
		string(kind), w.Limit, w.Skip)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return collectItems(rows)
}

// CountItems returns the number of items of a kind.
func (s *Store) CountItems(ctx context.Context, kind domain.Kind) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE kind = ?`, string(kind)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// AllItems returns every stored item.
func (s *Store) AllItems(ctx context.Context) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items i ORDER BY i.created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list all items: %w", err)
	}
	return collectItems(rows)
}

// CountSlugFamily counts items of kind whose slug matches base or
// base-<digits>, case-insensitively. LIKE narrows the candidates; the exact
// family test runs in Go.
func (s *Store) CountSlugFamily(ctx context.Context, kind domain.Kind, base, excludeID string) (int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug FROM items
		WHERE kind = ? AND id != ? AND (slug = ? COLLATE NOCASE OR slug LIKE ? ESCAPE '\')`,
		string(kind), excludeID, base, slug.LikePrefix(base))
	if err != nil {
		return 0, fmt.Errorf("query slug family: %w", err)
	}
	defer rows.Close()

	var candidates []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return 0, err
		}
		candidates = append(candidates, v)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return slug.NewMatcher(base).Count(candidates), nil
}
