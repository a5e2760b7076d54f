// Package api exposes the listing core over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/curatorapp/curator-server/internal/auth"
	"github.com/curatorapp/curator-server/internal/http/response"
	"github.com/curatorapp/curator-server/internal/ratelimit"
	"github.com/curatorapp/curator-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	tokens   *auth.TokenService
	limiter  *ratelimit.KeyedRateLimiter
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// Options tunes the router.
type Options struct {
	AllowedOrigins []string
	// RateLimiter throttles writes per client IP. Nil disables throttling.
	RateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, tokens *auth.TokenService, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		store:    st,
		services: services,
		tokens:   tokens,
		limiter:  opts.RateLimiter,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	// chi rejects middleware added after the first route, and huma registers
	// its docs routes on construction.
	s.setupMiddleware(opts.AllowedOrigins)

	config := huma.DefaultConfig("Curator API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	config.Transformers = append(config.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, config)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(allowedOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.observe)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(authMiddleware(s.tokens))
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, "Method not allowed", s.logger)
	})

	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerItemRoutes()
	s.registerUserRoutes()
}
