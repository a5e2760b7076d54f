package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/curatorapp/curator-server/internal/domain"
	domainerrors "github.com/curatorapp/curator-server/internal/errors"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/me",
		Summary:     "Get current user",
		Description: "Returns the caller with their favorites",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns the caller's favorited items, most recent first",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFavorites)
}

// ListFavoritesInput contains parameters for listing favorites.
type ListFavoritesInput struct {
	Kind string `query:"kind" doc:"Restrict to one catalog (quotes or stories)"`
}

// ItemsResponse contains a list of items.
type ItemsResponse struct {
	Items []*domain.Item `json:"items" doc:"Items"`
}

// ItemsOutput wraps a list of items for Huma.
type ItemsOutput struct {
	Body ItemsResponse
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	user, err := s.services.Favorites.Me(ctx, userID, getDisplayName(ctx))
	if err != nil {
		return nil, mapError(err)
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleListFavorites(ctx context.Context, input *ListFavoritesInput) (*ItemsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	var kind domain.Kind
	if input.Kind != "" {
		if kind, err = domain.ParseKind(input.Kind); err != nil {
			return nil, mapError(domainerrors.Validation(err.Error()))
		}
	}

	items, err := s.services.Favorites.ListFavorites(ctx, userID, kind)
	if err != nil {
		return nil, mapError(err)
	}
	return &ItemsOutput{Body: ItemsResponse{Items: items}}, nil
}
