package integration

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/api"
	"github.com/pageza/recipe-catalog/backend/internal/importer"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/router"
	"github.com/pageza/recipe-catalog/backend/internal/seed"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

const dataset = "RecipeId,Name,TotalMins,RecipeCategory,Keywords,IngredientList,Quantities\n" +
	`101,Garlic Butter Shrimp,20,Lunch/Snacks,"[""Quick""]","[""shrimp"", ""garlic"", ""butter""]","[""1 lb"", ""4 cloves"", ""2 tbsp""]"` + "\n" +
	`102,Roasted Garlic Soup,55,Lunch/Snacks,"[""Soup""]","[""garlic"", ""stock""]","[""2 heads"", ""4 cups""]"` + "\n" +
	`103,Berry Smoothie,5,Beverages,"[""Quick"", ""Healthy""]","[""berries"", ""yogurt""]","[""1 cup"", ""1/2 cup""]"` + "\n" +
	`104,Baked Oatmeal,45,Breakfast,,"[""oats"", ""milk""]","[""2 cups"", ""1 cup""]"` + "\n"

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *client) decode(w *httptest.ResponseRecorder, want int, v any) {
	c.t.Helper()
	require.Equal(c.t, want, w.Code, w.Body.String())
	if v != nil {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), v))
	}
}

func ids(summaries []types.RecipeSummary) []int64 {
	out := make([]int64, len(summaries))
	for i, s := range summaries {
		out[i] = s.RecipeID
	}
	return out
}

// runFlow loads a small dataset and walks a user through the API.
func runFlow(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	gin.SetMode(gin.TestMode)

	res, err := importer.NewLoader(db, nil).Load(ctx, strings.NewReader(dataset))
	require.NoError(t, err)
	require.Equal(t, 4, res.Inserted)
	_, err = seed.PredefinedCatalogs(ctx, db, seed.DefaultPredefined)
	require.NoError(t, err)

	cfg := &config.Config{Environment: config.Test, CORSOrigins: []string{"*"}}
	svc := api.NewServices(db, nil, "integration-secret")
	c := &client{t: t, router: router.SetupRouter(cfg, db, nil, svc)}

	var auth types.AuthResponse
	c.decode(c.do(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "cook",
		"email":    "cook@example.com",
		"password": "password123",
	}), http.StatusCreated, &auth)
	c.token = auth.Tokens.Access

	var search struct {
		Results []types.RecipeSummary `json:"results"`
	}
	c.decode(c.do(http.MethodGet, "/api/search?q=garlic", nil), http.StatusOK, &search)
	assert.ElementsMatch(t, []int64{101, 102}, ids(search.Results))

	c.decode(c.do(http.MethodGet, "/api/search?q=bake", nil), http.StatusOK, &search)
	assert.Equal(t, []int64{104}, ids(search.Results))

	for _, id := range []int64{103, 101, 104} {
		var detail types.RecipeDetail
		c.decode(c.do(http.MethodGet, fmt.Sprintf("/api/recipes/%d", id), nil), http.StatusOK, &detail)
		assert.Equal(t, id, detail.RecipeID)
	}
	var recent []types.RecipeSummary
	c.decode(c.do(http.MethodGet, "/api/recent", nil), http.StatusOK, &recent)
	assert.Equal(t, []int64{104, 101, 103}, ids(recent))

	var similar struct {
		Results []types.RecipeSummary `json:"results"`
	}
	c.decode(c.do(http.MethodGet, "/api/recipes/101/similar?limit=1", nil), http.StatusOK, &similar)
	require.Len(t, similar.Results, 1)
	assert.NotEqual(t, int64(101), similar.Results[0].RecipeID)

	var catalog types.CatalogResponse
	c.decode(c.do(http.MethodPost, "/api/catalogs", map[string]string{"name": "Weeknight"}), http.StatusCreated, &catalog)
	for _, id := range []int64{102, 101, 102} {
		c.decode(c.do(http.MethodPost, fmt.Sprintf("/api/catalogs/%d/add-recipe", catalog.ID), map[string]int64{"recipe_id": id}), http.StatusCreated, nil)
	}
	c.decode(c.do(http.MethodGet, fmt.Sprintf("/api/catalogs/%d", catalog.ID), nil), http.StatusOK, &catalog)
	assert.Equal(t, []int64{102, 101}, ids(catalog.Recipes))

	c.decode(c.do(http.MethodDelete, fmt.Sprintf("/api/catalogs/%d/remove-recipe/102", catalog.ID), nil), http.StatusNoContent, nil)
	c.decode(c.do(http.MethodDelete, fmt.Sprintf("/api/catalogs/%d/remove-recipe/102", catalog.ID), nil), http.StatusNotFound, nil)

	c.decode(c.do(http.MethodPost, "/api/favorites", map[string]int64{"recipe_id": 103}), http.StatusCreated, nil)
	var detail types.RecipeDetail
	c.decode(c.do(http.MethodGet, "/api/recipes/103", nil), http.StatusOK, &detail)
	assert.True(t, detail.IsFavorite)

	var pc models.PredefinedCatalog
	require.NoError(t, db.Where("name = ?", "< 30 Mins").Take(&pc).Error)
	var browse struct {
		Results []types.RecipeSummary `json:"results"`
	}
	c.decode(c.do(http.MethodGet, fmt.Sprintf("/api/predefined-catalogs/%d/recipes", pc.ID), nil), http.StatusOK, &browse)
	assert.Equal(t, []int64{101, 103}, ids(browse.Results))

	var beverages models.PredefinedCatalog
	require.NoError(t, db.Where("name = ?", "Beverages").Take(&beverages).Error)
	c.decode(c.do(http.MethodGet, fmt.Sprintf("/api/predefined-catalogs/%d/recipes", beverages.ID), nil), http.StatusOK, &browse)
	assert.Equal(t, []int64{103}, ids(browse.Results))
}

func TestFlowSQLite(t *testing.T) {
	runFlow(t, testhelpers.SetupSQLite(t))
}

func TestFlowPostgres(t *testing.T) {
	runFlow(t, testhelpers.SetupPostgres(t))
}
