// Package di provides dependency injection configuration for the Curator server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/curatorapp/curator-server/internal/auth"
	"github.com/curatorapp/curator-server/internal/config"
	"github.com/curatorapp/curator-server/internal/di/providers"
	"github.com/curatorapp/curator-server/internal/logger"
	"github.com/curatorapp/curator-server/internal/service"
	"github.com/curatorapp/curator-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideValidator)

	// Storage and search
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideItemService)
	do.Provide(injector, providers.ProvideListingService)
	do.Provide(injector, providers.ProvideRatingService)
	do.Provide(injector, providers.ProvideFavoriteService)
	do.Provide(injector, providers.ProvideReviewService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[providers.AuthKey](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.ItemService](injector)
	_ = do.MustInvoke[*service.ListingService](injector)
	_ = do.MustInvoke[*service.RatingService](injector)
	_ = do.MustInvoke[*service.FavoriteService](injector)
	_ = do.MustInvoke[*service.ReviewService](injector)

	// Server
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Rebuild the search index if it was lost
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
