package main

import (
	"context"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/seed"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	created, err := seed.Users(ctx, auth, seed.DefaultDemoUsers)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to seed test users")
	}

	logging.Info().Int("created", created).Int("total", len(seed.DefaultDemoUsers)).Msg("test users seeded")
	for _, u := range seed.DefaultDemoUsers {
		logging.Info().Str("username", u.Username).Str("password", seed.DemoPassword).Msg("test credentials")
	}
}
