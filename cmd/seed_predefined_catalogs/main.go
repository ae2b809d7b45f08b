package main

import (
	"context"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/seed"
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
	catalogs, err := seed.PredefinedCatalogs(ctx, db, seed.DefaultPredefined)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to seed predefined catalogs")
	}
	allergens, err := seed.Allergens(ctx, db, seed.DefaultAllergens)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to seed allergens")
	}
	logging.Info().Int("catalogs_created", catalogs).Int("allergens_created", allergens).Msg("predefined catalogs seeded")
}
