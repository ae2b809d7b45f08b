package main

import (
	"context"
	"errors"
	"flag"
	"math/rand/v2"
	"os"
	"time"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/seed"
)

func main() {
	seedValue := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed for recipe picks")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}

	rng := rand.New(rand.NewPCG(*seedValue, *seedValue>>1))
	res, err := seed.Demo(context.Background(), db, rng)
	if errors.Is(err, seed.ErrNotEnoughRecipes) {
		logging.Error().Err(err).Msg("load recipes before seeding demo data")
		os.Exit(1)
	}
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to seed demo data")
	}
	logging.Info().
		Int("users", res.Users).
		Int("catalogs", res.Catalogs).
		Int("favorites", res.Favorites).
		Msg("demo catalogs seeded")
}
