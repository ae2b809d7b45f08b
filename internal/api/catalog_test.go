package api

import (
	"fmt"
	"net/http"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogEndpoints(t *testing.T) {
	env := setupTestRouter(t)
	for _, id := range []int64{10, 20, 30} {
		testhelpers.CreateTestRecipe(t, env.db, id, fmt.Sprintf("Recipe %d", id))
	}
	alice := env.signup(t, "alice")
	bob := env.signup(t, "bob")

	w := PerformRequestWithToken(env.router, http.MethodPost, "/api/catalogs", map[string]string{"name": "Weeknight"}, alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	base := fmt.Sprintf("/api/catalogs/%d", created.ID)

	w = PerformRequestWithToken(env.router, http.MethodPost, "/api/catalogs", map[string]string{"name": "Weeknight"}, alice)
	assert.Equal(t, http.StatusConflict, w.Code)

	for _, id := range []int64{20, 10, 20} {
		w = PerformRequestWithToken(env.router, http.MethodPost, base+"/add-recipe", map[string]int64{"recipe_id": id}, alice)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w = PerformRequestWithToken(env.router, http.MethodPost, base+"/add-recipe", map[string]int64{"recipe_id": 99}, alice)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = PerformRequestWithToken(env.router, http.MethodPost, base+"/add-recipe", map[string]string{}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = PerformRequestWithToken(env.router, http.MethodGet, base, nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	var catalog struct {
		Name    string    `json:"name"`
		Recipes []summary `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	assert.Equal(t, "Weeknight", catalog.Name)
	assert.Equal(t, []int64{20, 10}, summaryIDs(catalog.Recipes))

	// other users cannot see or change the catalog
	w = PerformRequestWithToken(env.router, http.MethodGet, base, nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = PerformRequestWithToken(env.router, http.MethodPost, base+"/add-recipe", map[string]int64{"recipe_id": 30}, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = PerformRequestWithToken(env.router, http.MethodDelete, base+"/remove-recipe/20", nil, alice)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = PerformRequestWithToken(env.router, http.MethodDelete, base+"/remove-recipe/20", nil, alice)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = PerformRequestWithToken(env.router, http.MethodGet, "/api/catalogs", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	var list []struct {
		Recipes []summary `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, []int64{10}, summaryIDs(list[0].Recipes))

	w = PerformRequestWithToken(env.router, http.MethodDelete, base, nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = PerformRequestWithToken(env.router, http.MethodDelete, base, nil, alice)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = PerformRequestWithToken(env.router, http.MethodGet, base, nil, alice)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCatalogValidation(t *testing.T) {
	env := setupTestRouter(t)
	token := env.signup(t, "alice")

	w := PerformRequestWithToken(env.router, http.MethodPost, "/api/catalogs", map[string]string{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = PerformRequestWithToken(env.router, http.MethodPost, "/api/catalogs", map[string]string{"name": "   "}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = PerformRequestWithToken(env.router, http.MethodGet, "/api/catalogs/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
