package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/api"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/router"
	"github.com/pageza/recipe-catalog/backend/internal/search"
	"github.com/pageza/recipe-catalog/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.Info().Str("environment", string(cfg.Environment)).Str("db_driver", cfg.DBDriver).Msg("starting recipe catalog API")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(ctx, db); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// Redis only backs the search cache and the rate limiter.
		logging.Warn().Err(err).Msg("continuing without Redis")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	svc := api.NewServices(db, search.NewCache(redisClient, search.DefaultCacheTTL), cfg.JWTSecret,
		api.WithTokenTTL(cfg.JWTAccessTTL, cfg.JWTRefreshTTL))
	srv := server.New(cfg, router.SetupRouter(cfg, db, redisClient, svc))

	if err := srv.Run(ctx); err != nil {
		logging.Error().Err(err).Msg("server error")
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logging.Info().Msg("server stopped")
}
