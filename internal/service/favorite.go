package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/curatorapp/curator-server/internal/domain"
	domainerrors "github.com/curatorapp/curator-server/internal/errors"
	"github.com/curatorapp/curator-server/internal/metrics"
	"github.com/curatorapp/curator-server/internal/store"
)

// FavoriteService manages a user's favorites set.
type FavoriteService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(store store.Store, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		store:  store,
		logger: logger,
	}
}

// Toggle adds itemID to the user's favorites if absent and removes it
// otherwise. Returns the user with the updated set.
func (s *FavoriteService) Toggle(ctx context.Context, userID, itemID string) (_ *domain.User, err error) {
	defer metrics.ObserveOperation("toggle_favorite", "", time.Now(), &err)

	if err := requireActor(userID); err != nil {
		return nil, err
	}
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"item_id": "is required"})
	}

	user, err := s.store.ToggleFavorite(ctx, userID, itemID)
	if err != nil {
		return nil, translateStoreErr(err, "item not found")
	}

	added := user.HasFavorite(itemID)
	metrics.RecordFavoriteToggle(added)
	s.logger.Debug("favorite toggled", "user_id", userID, "item_id", itemID, "favorited", added)
	return user, nil
}

// Me returns the calling user, creating the record on first sight.
func (s *FavoriteService) Me(ctx context.Context, userID, displayName string) (*domain.User, error) {
	if err := requireActor(userID); err != nil {
		return nil, err
	}
	if err := s.store.EnsureUser(ctx, userID, displayName); err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, translateStoreErr(err, "user not found")
	}
	return user, nil
}

// ListFavorites returns the user's favorited items, most recently favorited
// first. An empty kind lists every kind.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string, kind domain.Kind) (_ []*domain.Item, err error) {
	defer metrics.ObserveOperation("list_favorites", string(kind), time.Now(), &err)

	if err := requireActor(userID); err != nil {
		return nil, err
	}
	if kind != "" {
		if err := checkKind(kind); err != nil {
			return nil, err
		}
	}
	items, err := s.store.ListFavoriteItems(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Item{}
	}
	return items, nil
}
