package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/curatorapp/curator-server/internal/domain"
	domainerrors "github.com/curatorapp/curator-server/internal/errors"
	"github.com/curatorapp/curator-server/internal/paging"
	"github.com/curatorapp/curator-server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{kind}",
		Summary:     "List catalog page",
		Description: "Returns one page of items, newest first. A page past the end redirects to the last page.",
		Tags:        []string{"Catalog"},
	}, s.handleListCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createItem",
		Method:        http.MethodPost,
		Path:          "/api/v1/catalog/{kind}",
		Summary:       "Create item",
		Description:   "Creates an item authored by the caller",
		Tags:          []string{"Catalog"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
	}, s.handleCreateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getItemBySlug",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{kind}/slug/{slug}",
		Summary:     "Get item by slug",
		Description: "Returns an item with its reviews",
		Tags:        []string{"Catalog"},
	}, s.handleGetItemBySlug)

	huma.Register(s.api, huma.Operation{
		OperationID: "previewSlug",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{kind}/slug-preview",
		Summary:     "Preview slug",
		Description: "Returns the slug a new item with this name would get",
		Tags:        []string{"Catalog"},
	}, s.handlePreviewSlug)

	huma.Register(s.api, huma.Operation{
		OperationID: "browseTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{kind}/tags",
		Summary:     "Browse tags",
		Description: "Returns tag counts and the items carrying the selected tag (any tag when none is given)",
		Tags:        []string{"Catalog"},
	}, s.handleBrowseTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{kind}/search",
		Summary:     "Search catalog",
		Description: "Full-text search over names and descriptions, best match first",
		Tags:        []string{"Catalog"},
	}, s.handleSearchCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "topRated",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{kind}/top",
		Summary:     "Top rated",
		Description: "Items with more than one review, highest average first",
		Tags:        []string{"Catalog"},
	}, s.handleTopRated)
}

// === DTOs ===

// CatalogPathInput identifies a catalog.
type CatalogPathInput struct {
	Kind string `path:"kind" enum:"quotes,stories" doc:"Catalog name"`
}

// ListCatalogInput contains parameters for listing a catalog page.
type ListCatalogInput struct {
	CatalogPathInput
	Page int `query:"page" default:"1" doc:"1-based page number"`
}

// CatalogPageResponse is one page of a catalog.
type CatalogPageResponse struct {
	Items      []*domain.Item `json:"items" doc:"Items on this page"`
	Page       int            `json:"page" doc:"Page number"`
	PageSize   int            `json:"page_size" doc:"Items per page"`
	TotalPages int            `json:"total_pages" doc:"Number of pages"`
	TotalCount int            `json:"total_count" doc:"Number of items in the catalog"`
}

// CatalogPageOutput wraps a page; Status and Location carry the redirect
// when the requested page is past the end.
type CatalogPageOutput struct {
	Status   int
	Location string `header:"Location"`
	Body     CatalogPageResponse
}

// ItemRequest is the request body for creating an item.
type ItemRequest struct {
	Name        string   `json:"name" minLength:"1" maxLength:"200" doc:"Display name"`
	Description string   `json:"description,omitempty" doc:"Description, HTML is converted to Markdown"`
	Tags        []string `json:"tags,omitempty" doc:"Tags, duplicates are dropped"`
	Photo       string   `json:"photo,omitempty" doc:"Photo file name"`
}

// CreateItemInput wraps the create item request for Huma.
type CreateItemInput struct {
	CatalogPathInput
	Body ItemRequest
}

// ItemOutput wraps an item for Huma.
type ItemOutput struct {
	Body *domain.Item
}

// GetItemBySlugInput contains parameters for fetching an item by slug.
type GetItemBySlugInput struct {
	CatalogPathInput
	Slug string `path:"slug" doc:"Item slug"`
}

// PreviewSlugInput contains parameters for previewing a slug.
type PreviewSlugInput struct {
	CatalogPathInput
	Name string `query:"name" required:"true" doc:"Prospective item name"`
}

// SlugResponse contains a derived slug.
type SlugResponse struct {
	Slug string `json:"slug" doc:"Derived slug"`
}

// SlugOutput wraps the slug response for Huma.
type SlugOutput struct {
	Body SlugResponse
}

// BrowseTagsInput contains parameters for browsing tags.
type BrowseTagsInput struct {
	CatalogPathInput
	Tag string `query:"tag" doc:"Tag to list items for"`
}

// BrowseTagsOutput wraps the tag browse result for Huma.
type BrowseTagsOutput struct {
	Body *service.TagBrowse
}

// SearchCatalogInput contains parameters for searching.
type SearchCatalogInput struct {
	CatalogPathInput
	Query string `query:"q" doc:"Search text"`
}

// RankedItemsResponse contains ranked items.
type RankedItemsResponse struct {
	Items []domain.RankedItem `json:"items" doc:"Ranked items"`
}

// RankedItemsOutput wraps ranked items for Huma.
type RankedItemsOutput struct {
	Body RankedItemsResponse
}

// === Handlers ===

func (s *Server) handleListCatalog(ctx context.Context, input *ListCatalogInput) (*CatalogPageOutput, error) {
	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, mapError(err)
	}

	page, err := s.services.Listing.ListPage(ctx, kind, input.Page)
	var oor *paging.OutOfRangeError
	if errors.As(err, &oor) {
		target := max(1, oor.TotalPages)
		return &CatalogPageOutput{
			Status:   http.StatusTemporaryRedirect,
			Location: fmt.Sprintf("/api/v1/catalog/%s?page=%d", kind.Plural(), target),
			Body: CatalogPageResponse{
				Items:      []*domain.Item{},
				Page:       target,
				PageSize:   s.services.Listing.PageSize(),
				TotalPages: oor.TotalPages,
			},
		}, nil
	}
	if err != nil {
		return nil, mapError(err)
	}

	return &CatalogPageOutput{
		Status: http.StatusOK,
		Body: CatalogPageResponse{
			Items:      page.Items,
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
			TotalCount: page.TotalCount,
		},
	}, nil
}

func (s *Server) handleCreateItem(ctx context.Context, input *CreateItemInput) (*ItemOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, mapError(err)
	}

	item, err := s.services.Items.Create(ctx, userID, kind, service.ItemInput{
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

func (s *Server) handleGetItemBySlug(ctx context.Context, input *GetItemBySlugInput) (*ItemOutput, error) {
	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, mapError(err)
	}
	item, err := s.services.Items.GetBySlug(ctx, kind, input.Slug, true)
	if err != nil {
		return nil, mapError(err)
	}
	return &ItemOutput{Body: item}, nil
}

func (s *Server) handlePreviewSlug(ctx context.Context, input *PreviewSlugInput) (*SlugOutput, error) {
	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, mapError(err)
	}
	slug, err := s.services.Items.GenerateSlug(ctx, kind, input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	return &SlugOutput{Body: SlugResponse{Slug: slug}}, nil
}

func (s *Server) handleBrowseTags(ctx context.Context, input *BrowseTagsInput) (*BrowseTagsOutput, error) {
	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, mapError(err)
	}
	browse, err := s.services.Listing.BrowseTag(ctx, kind, input.Tag)
	if err != nil {
		return nil, mapError(err)
	}
	return &BrowseTagsOutput{Body: browse}, nil
}

func (s *Server) handleSearchCatalog(ctx context.Context, input *SearchCatalogInput) (*RankedItemsOutput, error) {
	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, mapError(err)
	}
	items, err := s.services.Search.SearchItems(ctx, kind, input.Query)
	if err != nil {
		return nil, mapError(err)
	}
	return &RankedItemsOutput{Body: RankedItemsResponse{Items: items}}, nil
}

func (s *Server) handleTopRated(ctx context.Context, input *CatalogPathInput) (*RankedItemsOutput, error) {
	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, mapError(err)
	}
	items, err := s.services.Ratings.TopRated(ctx, kind)
	if err != nil {
		return nil, mapError(err)
	}
	return &RankedItemsOutput{Body: RankedItemsResponse{Items: items}}, nil
}

// parseKind maps a catalog path segment onto a kind.
func parseKind(raw string) (domain.Kind, error) {
	kind, err := domain.ParseKind(raw)
	if err != nil {
		return "", domainerrors.NotFoundf("unknown catalog %q", raw)
	}
	return kind, nil
}
