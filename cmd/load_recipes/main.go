package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/importer"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/search"
)

func main() {
	path := flag.String("path", "", "CSV file to import, a local path or s3://bucket/key")
	flag.Parse()
	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

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
	if err := database.RunMigrations(ctx, db); err != nil {
		logging.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logging.Warn().Err(err).Msg("search cache will not be invalidated")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	src, err := importer.Open(ctx, cfg, *path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", *path).Msg("failed to open dataset")
	}
	defer src.Close()

	loader := importer.NewLoader(db, search.NewCache(redisClient, search.DefaultCacheTTL))
	res, err := loader.Load(ctx, src)
	if err != nil {
		logging.Error().Err(err).
			Int("inserted", res.Inserted).
			Int("skipped", res.Skipped).
			Msg("import aborted")
		os.Exit(1)
	}

	logging.Info().
		Int("inserted", res.Inserted).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Dur("duration", res.Duration).
		Msg("import finished")
}
