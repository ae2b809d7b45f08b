package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/search"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Result summarizes a load.
type Result struct {
	Inserted int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// Loader writes parsed rows to the store and indexes them.
type Loader struct {
	db      *gorm.DB
	indexer *search.Indexer
	cache   *search.Cache
}

// NewLoader returns a loader. cache may be nil.
func NewLoader(db *gorm.DB, cache *search.Cache) *Loader {
	return &Loader{db: db, indexer: search.NewIndexer(db, cache), cache: cache}
}

// Load imports every row of the CSV in r. Recipes whose id already exists are
// skipped; malformed rows are logged and counted as failed. Each recipe is
// written and indexed in its own transaction.
func (l *Loader) Load(ctx context.Context, r io.Reader) (Result, error) {
	start := time.Now()
	log := logging.Ctx(ctx)

	reader, err := NewReader(r)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var rowErr *RowError
		if errors.As(err, &rowErr) {
			log.Warn().Int("line", rowErr.Line).Err(rowErr.Err).Msg("skipping malformed row")
			res.Failed++
			continue
		}
		if err != nil {
			return res, err
		}

		inserted, err := l.insert(ctx, row)
		if err != nil {
			return res, fmt.Errorf("line %d: recipe %d: %w", row.Line, row.RecipeID, err)
		}
		if inserted {
			res.Inserted++
		} else {
			res.Skipped++
		}
		if total := res.Inserted + res.Skipped; total%1000 == 0 {
			log.Info().Int("inserted", res.Inserted).Int("skipped", res.Skipped).Msg("import progress")
		}
	}

	if res.Inserted > 0 {
		l.cache.Invalidate(ctx)
	}
	res.Duration = time.Since(start)
	return res, nil
}

func (l *Loader) insert(ctx context.Context, row *Row) (bool, error) {
	inserted := false
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Recipe{}).Where("recipe_id = ?", row.RecipeID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check recipe: %w", err)
		}
		if count > 0 {
			return nil
		}

		recipe := &models.Recipe{
			RecipeID:            row.RecipeID,
			Name:                row.Name,
			CookMins:            row.CookMins,
			PrepMins:            row.PrepMins,
			TotalMins:           row.TotalMins,
			Calories:            row.Calories,
			FatContent:          row.FatContent,
			SaturatedFatContent: row.SaturatedFatContent,
			CholesterolContent:  row.CholesterolContent,
			SodiumContent:       row.SodiumContent,
			CarbohydrateContent: row.CarbohydrateContent,
			FiberContent:        row.FiberContent,
			SugarContent:        row.SugarContent,
			ProteinContent:      row.ProteinContent,
			Keywords:            models.StringList(row.Keywords),
			Images:              models.StringList(row.Images),
			Instructions:        row.Instructions,
		}

		if row.Category != "" {
			category := models.RecipeCategory{Name: row.Category}
			if err := tx.Where("name = ?", row.Category).FirstOrCreate(&category).Error; err != nil {
				return fmt.Errorf("failed to upsert category %q: %w", row.Category, err)
			}
			recipe.CategoryID = &category.ID
		}

		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		for i, ing := range row.Ingredients {
			ingredient := models.Ingredient{Name: ing.Name}
			if err := tx.Where("name = ?", ing.Name).FirstOrCreate(&ingredient).Error; err != nil {
				return fmt.Errorf("failed to upsert ingredient %q: %w", ing.Name, err)
			}
			link := models.RecipeIngredient{
				RecipeID:     recipe.RecipeID,
				IngredientID: ingredient.ID,
				Quantity:     ing.Quantity,
				Position:     i,
			}
			if err := tx.Omit(clause.Associations).Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link ingredient %q: %w", ing.Name, err)
			}
			link.Ingredient = &ingredient
			recipe.Ingredients = append(recipe.Ingredients, link)
		}

		if err := l.indexer.Index(tx, recipe); err != nil {
			return err
		}
		inserted = true
		return nil
	})
	return inserted, err
}
