package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/search"
)

func main() {
	batch := flag.Int("batch", search.DefaultBatchSize, "Recipes indexed per transaction")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logging.Warn().Err(err).Msg("search cache will not be invalidated")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	start := time.Now()
	n, err := search.NewIndexer(db, search.NewCache(redisClient, search.DefaultCacheTTL)).Reindex(ctx, *batch)
	if err != nil {
		logging.Fatal().Err(err).Msg("reindex failed")
	}
	logging.Info().Int("recipes", n).Dur("duration", time.Since(start)).Msg("search index rebuilt")
}
