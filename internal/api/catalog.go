package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

type CatalogHandler struct {
	catalogService service.ICatalogService
	authService    service.IAuthService
}

func NewCatalogHandler(catalogService service.ICatalogService, authService service.IAuthService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, authService: authService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	catalogs := router.Group("/catalogs")
	catalogs.Use(middleware.AuthMiddleware(h.authService))
	{
		catalogs.GET("", h.ListCatalogs)
		catalogs.POST("", h.CreateCatalog)
		catalogs.GET("/:id", h.GetCatalog)
		catalogs.DELETE("/:id", h.DeleteCatalog)
		catalogs.POST("/:id/add-recipe", h.AddRecipe)
		catalogs.DELETE("/:id/remove-recipe/:recipe_id", h.RemoveRecipe)
	}
}

func (h *CatalogHandler) ListCatalogs(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	catalogs, err := h.catalogService.List(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]types.CatalogResponse, 0, len(catalogs))
	for i := range catalogs {
		recipes, err := h.catalogService.Recipes(ctx, userID, catalogs[i].ID)
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, catalogResponse(&catalogs[i], recipes))
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) CreateCatalog(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.CreateCatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	catalog, err := h.catalogService.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogResponse(catalog, nil))
}

func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := catalogID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	catalog, err := h.catalogService.Get(ctx, userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	recipes, err := h.catalogService.Recipes(ctx, userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogResponse(catalog, recipes))
}

func (h *CatalogHandler) DeleteCatalog(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := catalogID(c)
	if !ok {
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddRecipe answers POST /catalogs/:id/add-recipe. Re-adding a member is
// accepted and changes nothing.
func (h *CatalogHandler) AddRecipe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := catalogID(c)
	if !ok {
		return
	}
	var req types.RecipeRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id required"})
		return
	}

	if _, err := h.catalogService.AddRecipe(c.Request.Context(), userID, id, *req.RecipeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"detail": "Recipe added"})
}

// RemoveRecipe answers DELETE /catalogs/:id/remove-recipe/:recipe_id
func (h *CatalogHandler) RemoveRecipe(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := catalogID(c)
	if !ok {
		return
	}
	recipeID, ok := idParam(c, "recipe_id")
	if !ok {
		return
	}

	res, err := h.catalogService.RemoveRecipe(c.Request.Context(), userID, id, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if res == service.NotMember {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found in this catalog"})
		return
	}
	c.Status(http.StatusNoContent)
}

func catalogID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid catalog id"})
		return 0, false
	}
	return uint(id), true
}

func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
	}
	return userID, ok
}

func catalogResponse(catalog *models.Catalog, recipes []models.Recipe) types.CatalogResponse {
	return types.CatalogResponse{
		ID:        catalog.ID,
		Name:      catalog.Name,
		CreatedAt: catalog.CreatedAt,
		Recipes:   types.NewRecipeSummaries(recipes),
	}
}
