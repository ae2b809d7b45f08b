package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/migrations"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date. PostgreSQL runs the embedded
// goose migrations; SQLite, used for development and tests, is auto-migrated
// from the models.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		logging.Info().Msg("using GORM auto-migration for SQLite")
		if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("failed to auto-migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return MigrateSQL(ctx, sqlDB)
}

// MigrateSQL applies every pending goose migration to a PostgreSQL database.
func MigrateSQL(ctx context.Context, sqlDB *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		logging.Info().
			Int64("version", r.Source.Version).
			Dur("duration", r.Duration).
			Msg("applied migration")
	}
	return nil
}

// RollbackSQL rolls back the most recently applied goose migration.
func RollbackSQL(ctx context.Context, sqlDB *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	logging.Info().Int64("version", result.Source.Version).Msg("rolled back migration")
	return nil
}

// OpenSQL opens a database/sql handle on PostgreSQL through lib/pq, for tools
// that work below gorm.
func OpenSQL(dsn string) (*sql.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	return sqlDB, nil
}
