package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AuthOption adjusts token lifetimes of the auth service built by NewServices
type AuthOption func(*authSettings)

type authSettings struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// WithTokenTTL sets the access and refresh token lifetimes.
func WithTokenTTL(access, refresh time.Duration) AuthOption {
	return func(s *authSettings) {
		s.accessTTL = access
		s.refreshTTL = refresh
	}
}

// HealthHandler reports whether the database (and Redis, when configured)
// answer.
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "healthy", "database": "ok"}
	code := http.StatusOK

	if err := database.HealthCheck(ctx, h.db); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("database health check failed")
		status["status"] = "unhealthy"
		status["database"] = "unreachable"
		code = http.StatusServiceUnavailable
	}
	if h.redis != nil {
		status["redis"] = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			// Redis only backs the cache and rate limiter; the API still works.
			logging.Ctx(ctx).Warn().Err(err).Msg("redis health check failed")
			status["redis"] = "unreachable"
		}
	}

	c.JSON(code, status)
}

// RegisterOpsRoutes registers /health and /metrics
func RegisterOpsRoutes(router *gin.Engine, health *HealthHandler) {
	router.GET("/health", health.HealthCheck)
	router.GET("/api/health", health.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
