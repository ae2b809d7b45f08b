package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/api"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
)

// SetupRouter configures the application routes. redisClient may be nil, in
// which case rate limiting is disabled.
func SetupRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, svc api.Services) *gin.Engine {
	if cfg.Environment.ReleaseMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSOrigins),
	)

	api.RegisterOpsRoutes(router, api.NewHealthHandler(db, redisClient))

	var limits []gin.HandlerFunc
	if redisClient != nil && cfg.RateLimitPerMin > 0 {
		limiter := middleware.NewAPIRateLimiter(redisClient, cfg.RateLimitPerMin)
		limits = append(limits, limiter.RateLimitMiddleware())
	}
	api.SetupAPI(router, svc, limits...)

	router.NoRoute(middleware.NotFound())
	return router
}
