package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/curatorapp/curator-server/internal/domain"
	"github.com/curatorapp/curator-server/internal/store"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// EnsureUser inserts the user if it is not known yet. A non-empty
// displayName refreshes the stored one.
func (s *Store) EnsureUser(ctx context.Context, userID, displayName string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, display_name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET display_name = excluded.display_name
		WHERE excluded.display_name != ''`,
		userID, displayName, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

// GetUser retrieves a user with its favorites.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return getUser(ctx, s.db, id)
}

func getUser(ctx context.Context, q querier, id string) (*domain.User, error) {
	var (
		u         domain.User
		createdAt string
	)
	err := q.QueryRowContext(ctx,
		`SELECT id, display_name, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.DisplayName, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `
		SELECT item_id FROM user_favorites
		WHERE user_id = ?
		ORDER BY created_at ASC, item_id ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	u.Favorites = []string{}
	for rows.Next() {
		var itemID string
		if err := rows.Scan(&itemID); err != nil {
			return nil, err
		}
		u.Favorites = append(u.Favorites, itemID)
	}
	return &u, rows.Err()
}

// ToggleFavorite removes itemID from the user's favorites if present and
// adds it otherwise. The whole read-modify-write runs in one immediate
// transaction, so concurrent toggles serialize.
func (s *Store) ToggleFavorite(ctx context.Context, userID, itemID string) (*domain.User, error) {
	var user *domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM items WHERE id = ?`, itemID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound.WithMessage(fmt.Sprintf("item %s not found", itemID))
		}
		if err != nil {
			return err
		}

		now := formatTime(time.Now())
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO users (id, display_name, created_at) VALUES (?, '', ?)`,
			userID, now); err != nil {
			return fmt.Errorf("ensure user: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM user_favorites WHERE user_id = ? AND item_id = ?`, userID, itemID)
		if err != nil {
			return fmt.Errorf("remove favorite: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO user_favorites (user_id, item_id, created_at) VALUES (?, ?, ?)`,
				userID, itemID, now); err != nil {
				return fmt.Errorf("add favorite: %w", err)
			}
		}

		user, err = getUser(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListFavoriteItems returns the user's favorited items, most recently
// favorited first. An empty kind matches every kind.
func (s *Store) ListFavoriteItems(ctx context.Context, userID string, kind domain.Kind) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM user_favorites f
		JOIN items i ON i.id = f.item_id
		WHERE f.user_id = ? AND (? = '' OR i.kind = ?)
		ORDER BY f.created_at DESC, i.id ASC`,
		userID, string(kind), string(kind))
	if err != nil {
		return nil, fmt.Errorf("list favorite items: %w", err)
	}
	return collectItems(rows)
}
