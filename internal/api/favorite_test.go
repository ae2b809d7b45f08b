package api

import (
	"net/http"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
	"github.com/pageza/recipe-catalog/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteEndpoints(t *testing.T) {
	env := setupTestRouter(t)
	testhelpers.CreateTestRecipe(t, env.db, 1, "Soup")
	testhelpers.CreateTestRecipe(t, env.db, 2, "Stew")
	token := env.signup(t, "alice")

	for _, id := range []int64{1, 2, 1} {
		w := PerformRequestWithToken(env.router, http.MethodPost, "/api/favorites", map[string]int64{"recipe_id": id}, token)
		assert.Equal(t, http.StatusCreated, w.Code)
	}
	w := PerformRequestWithToken(env.router, http.MethodPost, "/api/favorites", map[string]int64{"recipe_id": 3}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = PerformRequestWithToken(env.router, http.MethodGet, "/api/favorites", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, []int64{1, 2}, decodeList(t, w))

	w = PerformRequestWithToken(env.router, http.MethodGet, "/api/recipes/1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var detail types.RecipeDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.True(t, detail.IsFavorite)

	w = PerformRequestWithToken(env.router, http.MethodDelete, "/api/favorites/1", nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = PerformRequestWithToken(env.router, http.MethodDelete, "/api/favorites/1", nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = PerformRequestWithToken(env.router, http.MethodGet, "/api/favorites", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{2}, decodeList(t, w))
}
