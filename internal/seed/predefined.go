// Package seed writes the reference and demo data used by the seed commands.
// Every seeder is idempotent.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/pageza/recipe-catalog/backend/internal/filter"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"gorm.io/gorm"
)

// PredefinedCatalog is a browse section to seed.
type PredefinedCatalog struct {
	Name     string
	Criteria models.FilterCriteria
}

// PredefinedType is a catalog type with its sections.
type PredefinedType struct {
	Name     string
	Catalogs []PredefinedCatalog
}

// DefaultPredefined is the browse section layout.
var DefaultPredefined = []PredefinedType{
	{
		Name: "Meal Type",
		Catalogs: []PredefinedCatalog{
			{"Breakfast", models.FilterCriteria{string(filter.RecipeCategory): "Breakfast"}},
			{"Dessert", models.FilterCriteria{string(filter.RecipeCategory): "Dessert"}},
			{"Lunch/Snacks", models.FilterCriteria{string(filter.RecipeCategory): "Lunch/Snacks"}},
			{"Beverages", models.FilterCriteria{string(filter.RecipeCategory): "Beverages"}},
		},
	},
	{
		Name: "Cook Time",
		Catalogs: []PredefinedCatalog{
			{"< 15 Mins", models.FilterCriteria{string(filter.TotalMinsLT): 15}},
			{"< 30 Mins", models.FilterCriteria{string(filter.TotalMinsLT): 30}},
			{"< 60 Mins", models.FilterCriteria{string(filter.TotalMinsLT): 60}},
		},
	},
}

// PredefinedCatalogs ensures every type and catalog of layout exists. Existing
// catalogs keep their stored criteria. It returns the number of catalogs
// created.
func PredefinedCatalogs(ctx context.Context, db *gorm.DB, layout []PredefinedType) (int, error) {
	log := logging.Ctx(ctx)
	created := 0

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range layout {
			ctype := models.PredefinedCatalogType{Name: t.Name}
			if err := tx.Where("name = ?", t.Name).FirstOrCreate(&ctype).Error; err != nil {
				return fmt.Errorf("failed to ensure catalog type %q: %w", t.Name, err)
			}
			log.Info().Str("type", t.Name).Msg("ensured predefined catalog type")

			for _, c := range t.Catalogs {
				if _, err := filter.Parse(c.Criteria); err != nil {
					return fmt.Errorf("catalog %q: %w", c.Name, err)
				}
				ok, err := ensure(tx, &models.PredefinedCatalog{TypeID: ctype.ID, Name: c.Name, FilterCriteria: c.Criteria},
					"type_id = ? AND name = ?", ctype.ID, c.Name)
				if err != nil {
					return fmt.Errorf("failed to ensure catalog %q: %w", c.Name, err)
				}
				if ok {
					created++
				}
				log.Debug().Str("type", t.Name).Str("catalog", c.Name).Msg("ensured predefined catalog")
			}
		}
		return nil
	})
	return created, err
}

// DefaultAllergens are the major food allergens offered to users.
var DefaultAllergens = []string{
	"Milk",
	"Eggs",
	"Fish",
	"Shellfish",
	"Tree Nuts",
	"Peanuts",
	"Wheat",
	"Soybeans",
	"Sesame",
}

// Allergens ensures every name exists in the allergen list and returns the
// number of allergens created.
func Allergens(ctx context.Context, db *gorm.DB, names []string) (int, error) {
	db = db.WithContext(ctx)
	created := 0
	for _, name := range names {
		ok, err := ensure(db, &models.Allergen{Name: name}, "name = ?", name)
		if err != nil {
			return created, fmt.Errorf("failed to ensure allergen %q: %w", name, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// ensure creates row unless a row matching the conditions exists. It reports
// whether row was created. The lookup and the insert run as separate chains
// on db so a not-found lookup does not leak its error into Create.
func ensure[T any](db *gorm.DB, row *T, query string, args ...any) (bool, error) {
	var existing T
	err := db.Where(query, args...).Take(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := db.Create(row).Error; err != nil {
		return false, err
	}
	return true, nil
}
