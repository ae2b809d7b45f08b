package main

import (
	"context"
	"flag"
	"os"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// DATABASE_URL overrides the DB_* settings, as in deployment scripts.
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = cfg.DSN()
	}

	db, err := database.OpenSQL(dsn)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if *rollback {
		if err := database.RollbackSQL(ctx, db); err != nil {
			logging.Fatal().Err(err).Msg("rollback failed")
		}
		return
	}
	if err := database.MigrateSQL(ctx, db); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}
	logging.Info().Msg("database is up to date")
}
