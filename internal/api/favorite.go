package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

type FavoriteHandler struct {
	favoriteService service.IFavoriteService
	authService     service.IAuthService
}

func NewFavoriteHandler(favoriteService service.IFavoriteService, authService service.IAuthService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService, authService: authService}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	favorites := router.Group("/favorites")
	favorites.Use(middleware.AuthMiddleware(h.authService))
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("", h.AddFavorite)
		favorites.DELETE("/:recipe_id", h.RemoveFavorite)
	}
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	recipes, err := h.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NewRecipeSummaries(recipes))
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.RecipeRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id required"})
		return
	}

	if _, err := h.favoriteService.Add(c.Request.Context(), userID, *req.RecipeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"detail": "added"})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	recipeID, ok := idParam(c, "recipe_id")
	if !ok {
		return
	}
	if err := h.favoriteService.Remove(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
