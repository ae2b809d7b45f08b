package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

type PredefinedHandler struct {
	predefinedService service.IPredefinedService
}

func NewPredefinedHandler(predefinedService service.IPredefinedService) *PredefinedHandler {
	return &PredefinedHandler{predefinedService: predefinedService}
}

func (h *PredefinedHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/predefined-types", h.ListTypes)

	predefined := router.Group("/predefined-catalogs")
	{
		predefined.GET("", h.ListCatalogs)
		predefined.GET("/:id", h.GetCatalog)
		predefined.GET("/:id/recipes", h.ResolveCatalog)
	}
}

func (h *PredefinedHandler) ListTypes(c *gin.Context) {
	catalogTypes, err := h.predefinedService.ListTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogTypes)
}

func (h *PredefinedHandler) ListCatalogs(c *gin.Context) {
	catalogs, err := h.predefinedService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]types.PredefinedCatalogResponse, len(catalogs))
	for i := range catalogs {
		out[i] = predefinedResponse(&catalogs[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *PredefinedHandler) GetCatalog(c *gin.Context) {
	id, ok := predefinedID(c)
	if !ok {
		return
	}
	catalog, err := h.predefinedService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, predefinedResponse(catalog))
}

// ResolveCatalog answers GET /predefined-catalogs/:id/recipes?limit=&offset=
func (h *PredefinedHandler) ResolveCatalog(c *gin.Context) {
	id, ok := predefinedID(c)
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	recipes, err := h.predefinedService.Resolve(c.Request.Context(), id, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": types.NewRecipeSummaries(recipes)})
}

func predefinedID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid predefined catalog id"})
		return 0, false
	}
	return uint(id), true
}

func predefinedResponse(pc *models.PredefinedCatalog) types.PredefinedCatalogResponse {
	resp := types.PredefinedCatalogResponse{
		ID:             pc.ID,
		TypeID:         pc.TypeID,
		Name:           pc.Name,
		FilterCriteria: map[string]any(pc.FilterCriteria),
	}
	if pc.Type != nil {
		resp.Type = pc.Type.Name
	}
	return resp
}
