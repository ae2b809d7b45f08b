package main

import (
	"context"
	"fmt"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
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

	patched, err := service.NewPredefinedService(db).RepairFilters(context.Background())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to repair filter criteria")
	}
	fmt.Printf("Patched %d predefined catalogs.\n", patched)
}
