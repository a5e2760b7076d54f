package api

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/curatorapp/curator-server/internal/auth"
	"github.com/curatorapp/curator-server/internal/ratelimit"
	"github.com/curatorapp/curator-server/internal/search"
	"github.com/curatorapp/curator-server/internal/service"
	"github.com/curatorapp/curator-server/internal/store/sqlite"
	"github.com/curatorapp/curator-server/internal/validation"
)

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api    humatest.TestAPI
	tokens *auth.TokenService
}

type testOptions struct {
	pageSize int
	limiter  *ratelimit.KeyedRateLimiter
}

// testEnvelope mirrors APIEnvelope with typed data.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

func setupTestServer(t *testing.T, opts testOptions) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "curator.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	idx, err := search.Open(search.Options{InMemory: true, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	if opts.pageSize == 0 {
		opts.pageSize = 20
	}

	v := validation.New()
	searchService := service.NewSearchService(idx, st, logger)
	st.SetSearchIndexer(searchService)

	services := &Services{
		Items:     service.NewItemService(st, v, logger),
		Listing:   service.NewListingService(st, opts.pageSize, logger),
		Search:    searchService,
		Ratings:   service.NewRatingService(st, logger),
		Favorites: service.NewFavoriteService(st, logger),
		Reviews:   service.NewReviewService(st, v, logger),
	}

	s := NewServer(st, services, tokens, Options{
		AllowedOrigins: []string{"*"},
		RateLimiter:    opts.limiter,
	}, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
		tokens: tokens,
	}
}

// bearer returns the Authorization header argument for userID.
func (ts *testServer) bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := ts.tokens.Issue(userID, "Name of "+userID)
	require.NoError(t, err)
	return "Authorization: Bearer " + token
}

func decodeEnvelope[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return env
}

func requireStatus(t *testing.T, want int, resp *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, resp.Code, "body: %s", resp.Body.String())
}
