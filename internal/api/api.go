package api

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-catalog/backend/internal/search"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"gorm.io/gorm"
)

// Services bundles the services behind the HTTP API
type Services struct {
	Auth       service.IAuthService
	Search     service.ISearchService
	Recipe     service.IRecipeService
	Recency    service.IRecencyService
	Catalog    service.ICatalogService
	Favorite   service.IFavoriteService
	Predefined service.IPredefinedService
	Allergy    service.IAllergyService
}

// NewServices wires every service to db. cache may be nil.
func NewServices(db *gorm.DB, cache *search.Cache, jwtSecret string, opts ...AuthOption) Services {
	auth := authSettings{}
	for _, opt := range opts {
		opt(&auth)
	}
	return Services{
		Auth:       service.NewAuthService(db, jwtSecret, auth.accessTTL, auth.refreshTTL),
		Search:     service.NewSearchService(db, cache),
		Recipe:     service.NewRecipeService(db),
		Recency:    service.NewRecencyService(db),
		Catalog:    service.NewCatalogService(db),
		Favorite:   service.NewFavoriteService(db),
		Predefined: service.NewPredefinedService(db),
		Allergy:    service.NewAllergyService(db),
	}
}

// SetupAPI registers every handler under /api
func SetupAPI(router *gin.Engine, svc Services, extra ...gin.HandlerFunc) {
	v1 := router.Group("/api", extra...)
	{
		NewAuthHandler(svc.Auth).RegisterRoutes(v1)
		NewRecipeHandler(svc.Recipe, svc.Search, svc.Recency, svc.Favorite, svc.Auth).RegisterRoutes(v1)
		NewCatalogHandler(svc.Catalog, svc.Auth).RegisterRoutes(v1)
		NewFavoriteHandler(svc.Favorite, svc.Auth).RegisterRoutes(v1)
		NewPredefinedHandler(svc.Predefined).RegisterRoutes(v1)
		NewAllergyHandler(svc.Allergy, svc.Auth).RegisterRoutes(v1)
	}
}
