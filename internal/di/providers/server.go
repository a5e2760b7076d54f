package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/curatorapp/curator-server/internal/api"
	"github.com/curatorapp/curator-server/internal/auth"
	"github.com/curatorapp/curator-server/internal/config"
	"github.com/curatorapp/curator-server/internal/logger"
	"github.com/curatorapp/curator-server/internal/ratelimit"
	"github.com/curatorapp/curator-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// RateLimiterHandle wraps the write limiter. Limiter is nil when rate
// limiting is disabled.
type RateLimiterHandle struct {
	Limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	if h.Limiter != nil {
		h.Limiter.Stop()
	}
	return nil
}

// ProvideRateLimiter provides the per-client write limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.RateLimit.Enabled {
		log.Info("Write rate limiting disabled by configuration")
		return &RateLimiterHandle{}, nil
	}

	limiter := ratelimit.New(cfg.RateLimit.Rate, cfg.RateLimit.Burst, rateLimiterIdleTTL)
	log.Info("Write rate limiting enabled", "rate", cfg.RateLimit.Rate, "burst", cfg.RateLimit.Burst)

	return &RateLimiterHandle{Limiter: limiter}, nil
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	limiterHandle := do.MustInvoke[*RateLimiterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Items:     do.MustInvoke[*service.ItemService](i),
		Listing:   do.MustInvoke[*service.ListingService](i),
		Search:    do.MustInvoke[*service.SearchService](i),
		Ratings:   do.MustInvoke[*service.RatingService](i),
		Favorites: do.MustInvoke[*service.FavoriteService](i),
		Reviews:   do.MustInvoke[*service.ReviewService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, tokens, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimiter:    limiterHandle.Limiter,
	}, log.WithComponent("api").Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
