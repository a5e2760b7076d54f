package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/curatorapp/curator-server/internal/domain"
	"github.com/curatorapp/curator-server/internal/service"
)

func (s *Server) registerItemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Get item",
		Description: "Returns an item by ID, optionally with its reviews",
		Tags:        []string{"Items"},
	}, s.handleGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateItem",
		Method:      http.MethodPatch,
		Path:        "/api/v1/items/{id}",
		Summary:     "Update item",
		Description: "Updates an item. Only its author may edit it.",
		Tags:        []string{"Items"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addReview",
		Method:        http.MethodPost,
		Path:          "/api/v1/items/{id}/reviews",
		Summary:       "Add review",
		Description:   "Adds a rating and review text to an item",
		Tags:          []string{"Reviews"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleAddReview)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}/reviews",
		Summary:     "List reviews",
		Description: "Returns an item's reviews, oldest first",
		Tags:        []string{"Reviews"},
	}, s.handleListReviews)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/items/{id}/favorite",
		Summary:     "Toggle favorite",
		Description: "Adds the item to the caller's favorites, or removes it if already present",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleFavorite)
}

// === DTOs ===

// ItemPathInput identifies an item.
type ItemPathInput struct {
	ID string `path:"id" doc:"Item ID"`
}

// GetItemInput contains parameters for getting an item.
type GetItemInput struct {
	ItemPathInput
	Reviews bool `query:"reviews" doc:"Include reviews"`
}

// UpdateItemRequest is the request body for updating an item.
type UpdateItemRequest struct {
	Name        *string   `json:"name,omitempty" doc:"Display name"`
	Description *string   `json:"description,omitempty" doc:"Description"`
	Tags        *[]string `json:"tags,omitempty" doc:"Replacement tag list"`
	Photo       *string   `json:"photo,omitempty" doc:"Photo file name"`
}

// UpdateItemInput wraps the update item request for Huma.
type UpdateItemInput struct {
	ItemPathInput
	Body UpdateItemRequest
}

// AddReviewRequest is the request body for adding a review.
type AddReviewRequest struct {
	Rating int    `json:"rating" doc:"Rating from 1 to 5"`
	Text   string `json:"text" doc:"Review text"`
}

// AddReviewInput wraps the add review request for Huma.
type AddReviewInput struct {
	ItemPathInput
	Body AddReviewRequest
}

// ReviewOutput wraps a review for Huma.
type ReviewOutput struct {
	Body *domain.Review
}

// ReviewsResponse contains an item's reviews.
type ReviewsResponse struct {
	Reviews []*domain.Review `json:"reviews" doc:"Reviews, oldest first"`
}

// ReviewsOutput wraps the reviews response for Huma.
type ReviewsOutput struct {
	Body ReviewsResponse
}

// UserOutput wraps a user for Huma.
type UserOutput struct {
	Body *domain.User
}

// === Handlers ===

func (s *Server) handleGetItem(ctx context.Context, input *GetItemInput) (*ItemOutput, error) {
	item, err := s.services.Items.Get(ctx, input.ID, input.Reviews)
	if err != nil {
		return nil, mapError(err)
	}
	return &ItemOutput{Body: item}, nil
}

func (s *Server) handleUpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	item, err := s.services.Items.Update(ctx, userID, input.ID, service.ItemPatch{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Tags:        input.Body.Tags,
		Photo:       input.Body.Photo,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &ItemOutput{Body: item}, nil
}

func (s *Server) handleAddReview(ctx context.Context, input *AddReviewInput) (*ReviewOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	review, err := s.services.Reviews.Add(ctx, userID, input.ID, service.ReviewInput{
		Rating: input.Body.Rating,
		Text:   input.Body.Text,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &ReviewOutput{Body: review}, nil
}

func (s *Server) handleListReviews(ctx context.Context, input *ItemPathInput) (*ReviewsOutput, error) {
	reviews, err := s.services.Reviews.ListForItem(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &ReviewsOutput{Body: ReviewsResponse{Reviews: reviews}}, nil
}

func (s *Server) handleToggleFavorite(ctx context.Context, input *ItemPathInput) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	user, err := s.services.Favorites.Toggle(ctx, userID, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &UserOutput{Body: user}, nil
}
