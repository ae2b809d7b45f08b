package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

type AllergyHandler struct {
	allergyService service.IAllergyService
	authService    service.IAuthService
}

func NewAllergyHandler(allergyService service.IAllergyService, authService service.IAuthService) *AllergyHandler {
	return &AllergyHandler{allergyService: allergyService, authService: authService}
}

func (h *AllergyHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/allergens", h.ListAllergens)

	me := router.Group("/me")
	me.Use(middleware.AuthMiddleware(h.authService))
	{
		me.GET("/allergies", h.GetAllergies)
		me.PUT("/allergies", h.UpdateAllergies)
	}
}

func (h *AllergyHandler) ListAllergens(c *gin.Context) {
	allergens, err := h.allergyService.ListAllergens(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, allergens)
}

func (h *AllergyHandler) GetAllergies(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	allergens, err := h.allergyService.GetUserAllergies(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, allergens)
}

func (h *AllergyHandler) UpdateAllergies(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.UpdateAllergiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allergens, err := h.allergyService.SetUserAllergies(c.Request.Context(), userID, req.AllergenIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, allergens)
}
