package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-catalog/backend/internal/filter"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// MaxPageSize caps the limit of filtered recipe lists.
const MaxPageSize = 100

type RecipeHandler struct {
	recipeService   service.IRecipeService
	searchService   service.ISearchService
	recencyService  service.IRecencyService
	favoriteService service.IFavoriteService
	authService     service.IAuthService
}

func NewRecipeHandler(
	recipeService service.IRecipeService,
	searchService service.ISearchService,
	recencyService service.IRecencyService,
	favoriteService service.IFavoriteService,
	authService service.IAuthService,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		searchService:   searchService,
		recencyService:  recencyService,
		favoriteService: favoriteService,
		authService:     authService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/search", h.Search)
	router.GET("/recent", middleware.AuthMiddleware(h.authService), h.ListRecent)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:recipe_id", middleware.OptionalAuth(h.authService), h.GetRecipe)
		recipes.GET("/:recipe_id/similar", h.SimilarRecipes)
	}
}

// Search answers GET /search?q=&exclude=&limit=
func (h *RecipeHandler) Search(c *gin.Context) {
	limit, ok := intQuery(c, "limit", service.DefaultSearchLimit)
	if !ok {
		return
	}

	var excludeID *int64
	if c.Query("exclude") != "" {
		id, ok := int64Query(c, "exclude")
		if !ok {
			return
		}
		excludeID = &id
	}

	recipes, err := h.searchService.Search(c.Request.Context(), c.Query("q"), excludeID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": types.NewRecipeSummaries(recipes)})
}

// ListRecipes answers GET /recipes with optional filter query parameters
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	values := make(map[string]string, len(filter.Keys))
	for _, k := range filter.Keys {
		values[string(k)] = c.Query(string(k))
	}
	spec, err := filter.ParseStrings(values)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, ok := pageQuery(c)
	if !ok {
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), spec, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": types.NewRecipeSummaries(recipes)})
}

// GetRecipe returns the recipe detail. For an authenticated caller the
// access is recorded and is_favorite is filled in.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := idParam(c, "recipe_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	recipe, err := h.recipeService.GetRecipe(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	isFavorite := false
	if userID, ok := middleware.UserID(c); ok {
		if err := h.recencyService.RecordAccess(ctx, userID, id); err != nil {
			respondError(c, err)
			return
		}
		isFavorite, err = h.favoriteService.IsFavorite(ctx, userID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		logging.Ctx(ctx).Debug().Int64("recipe_id", id).Str("user_id", userID.String()).Msg("recorded recipe access")
	}

	c.JSON(http.StatusOK, types.NewRecipeDetail(recipe, isFavorite))
}

// SimilarRecipes answers GET /recipes/:recipe_id/similar
func (h *RecipeHandler) SimilarRecipes(c *gin.Context) {
	id, ok := idParam(c, "recipe_id")
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", service.DefaultSearchLimit)
	if !ok {
		return
	}

	recipes, err := h.recipeService.SimilarRecipes(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": types.NewRecipeSummaries(recipes)})
}

// ListRecent answers GET /recent?limit=
func (h *RecipeHandler) ListRecent(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	limit, ok := intQuery(c, "limit", service.MaxRecent)
	if !ok {
		return
	}

	recipes, err := h.recencyService.ListRecent(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewRecipeSummaries(recipes))
}

func pageQuery(c *gin.Context) (service.Page, bool) {
	limit, ok := intQuery(c, "limit", 0)
	if !ok {
		return service.Page{}, false
	}
	offset, ok := intQuery(c, "offset", 0)
	if !ok {
		return service.Page{}, false
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return service.Page{Limit: limit, Offset: offset}, true
}
