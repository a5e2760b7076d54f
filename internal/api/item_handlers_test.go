package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curatorapp/curator-server/internal/domain"
)

func TestGetItem(t *testing.T) {
	ts := setupTestServer(t, testOptions{})
	it := ts.createItem(t, ts.bearer(t, "user-a"), "quotes", map[string]any{"name": "Findable"})

	resp := ts.api.Post("/api/v1/items/"+it.ID+"/reviews", ts.bearer(t, "user-b"), map[string]any{"rating": 4, "text": "nice"})
	requireStatus(t, http.StatusCreated, resp)

	resp = ts.api.Get("/api/v1/items/" + it.ID)
	requireStatus(t, http.StatusOK, resp)
	assert.Nil(t, decodeEnvelope[*domain.Item](t, resp.Body.Bytes()).Data.Reviews)

	resp = ts.api.Get("/api/v1/items/" + it.ID + "?reviews=true")
	requireStatus(t, http.StatusOK, resp)
	assert.Len(t, decodeEnvelope[*domain.Item](t, resp.Body.Bytes()).Data.Reviews, 1)

	resp = ts.api.Get("/api/v1/items/item-missing")
	requireStatus(t, http.StatusNotFound, resp)
}

func TestUpdateItem_OnlyAuthor(t *testing.T) {
	ts := setupTestServer(t, testOptions{})
	owner := ts.bearer(t, "user-a")
	it := ts.createItem(t, owner, "quotes", map[string]any{"name": "Mine", "tags": []string{"x"}})

	resp := ts.api.Patch("/api/v1/items/"+it.ID, ts.bearer(t, "user-b"), map[string]any{"name": "Stolen"})
	requireStatus(t, http.StatusForbidden, resp)
	env := decodeEnvelope[any](t, resp.Body.Bytes())
	assert.Equal(t, "FORBIDDEN", env.Code)
	assert.Equal(t, "you must own an item to edit it", env.Message)

	resp = ts.api.Get("/api/v1/items/" + it.ID)
	requireStatus(t, http.StatusOK, resp)
	assert.Equal(t, "Mine", decodeEnvelope[*domain.Item](t, resp.Body.Bytes()).Data.Name)

	resp = ts.api.Patch("/api/v1/items/"+it.ID, owner, map[string]any{"name": "Still Mine", "tags": []string{"y"}})
	requireStatus(t, http.StatusOK, resp)
	updated := decodeEnvelope[*domain.Item](t, resp.Body.Bytes()).Data
	assert.Equal(t, "Still Mine", updated.Name)
	assert.Equal(t, "still-mine", updated.Slug)
	assert.Equal(t, []string{"y"}, updated.Tags)
}

func TestReviews(t *testing.T) {
	ts := setupTestServer(t, testOptions{})
	it := ts.createItem(t, ts.bearer(t, "user-a"), "stories", map[string]any{"name": "Tale"})
	reviewer := ts.bearer(t, "user-b")

	resp := ts.api.Post("/api/v1/items/"+it.ID+"/reviews", reviewer, map[string]any{"rating": 9, "text": "too much"})
	requireStatus(t, http.StatusBadRequest, resp)
	env := decodeEnvelope[any](t, resp.Body.Bytes())
	details, ok := env.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "must be between 1 and 5", details["rating"])

	resp = ts.api.Post("/api/v1/items/"+it.ID+"/reviews", reviewer, map[string]any{"rating": 3, "text": "<i>fine</i>"})
	requireStatus(t, http.StatusCreated, resp)
	review := decodeEnvelope[*domain.Review](t, resp.Body.Bytes()).Data
	assert.Equal(t, "fine", review.Text)
	assert.Equal(t, "user-b", review.AuthorID)

	resp = ts.api.Get("/api/v1/items/" + it.ID + "/reviews")
	requireStatus(t, http.StatusOK, resp)
	list := decodeEnvelope[ReviewsResponse](t, resp.Body.Bytes()).Data
	require.Len(t, list.Reviews, 1)
	assert.Equal(t, review.ID, list.Reviews[0].ID)

	resp = ts.api.Post("/api/v1/items/item-missing/reviews", reviewer, map[string]any{"rating": 3, "text": "x"})
	requireStatus(t, http.StatusNotFound, resp)
}

func TestToggleFavorite(t *testing.T) {
	ts := setupTestServer(t, testOptions{})
	it := ts.createItem(t, ts.bearer(t, "user-a"), "quotes", map[string]any{"name": "Lovely"})
	fan := ts.bearer(t, "user-b")

	resp := ts.api.Post("/api/v1/items/" + it.ID + "/favorite")
	requireStatus(t, http.StatusUnauthorized, resp)

	resp = ts.api.Post("/api/v1/items/"+it.ID+"/favorite", fan)
	requireStatus(t, http.StatusOK, resp)
	assert.Equal(t, []string{it.ID}, decodeEnvelope[*domain.User](t, resp.Body.Bytes()).Data.Favorites)

	resp = ts.api.Get("/api/v1/favorites?kind=quotes", fan)
	requireStatus(t, http.StatusOK, resp)
	items := decodeEnvelope[ItemsResponse](t, resp.Body.Bytes()).Data.Items
	require.Len(t, items, 1)
	assert.Equal(t, it.ID, items[0].ID)

	resp = ts.api.Post("/api/v1/items/"+it.ID+"/favorite", fan)
	requireStatus(t, http.StatusOK, resp)
	assert.Empty(t, decodeEnvelope[*domain.User](t, resp.Body.Bytes()).Data.Favorites)

	resp = ts.api.Post("/api/v1/items/item-missing/favorite", fan)
	requireStatus(t, http.StatusNotFound, resp)
}

func TestCurrentUser(t *testing.T) {
	ts := setupTestServer(t, testOptions{})

	resp := ts.api.Get("/api/v1/me", ts.bearer(t, "user-z"))
	requireStatus(t, http.StatusOK, resp)
	user := decodeEnvelope[*domain.User](t, resp.Body.Bytes()).Data
	assert.Equal(t, "user-z", user.ID)
	assert.Equal(t, "Name of user-z", user.DisplayName)

	resp = ts.api.Get("/api/v1/favorites?kind=poems", ts.bearer(t, "user-z"))
	requireStatus(t, http.StatusBadRequest, resp)
}
