package api

import "github.com/curatorapp/curator-server/internal/service"

// Services groups the business services used by the API server.
type Services struct {
	Items     *service.ItemService
	Listing   *service.ListingService
	Search    *service.SearchService
	Ratings   *service.RatingService
	Favorites *service.FavoriteService
	Reviews   *service.ReviewService
}
