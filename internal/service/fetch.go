package service

import (
	"context"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"gorm.io/gorm"
)

// recipesByIDs loads the recipes with the given ids in one query and returns
// them in the order of ids. Ids without a recipe are skipped.
func recipesByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return []models.Recipe{}, nil
	}

	var rows []models.Recipe
	if err := db.WithContext(ctx).Where("recipe_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, storageErr(err, "load recipes")
	}

	position := make(map[int64]int, len(ids))
	for i, id := range ids {
		if _, dup := position[id]; !dup {
			position[id] = i
		}
	}
	ordered := make([]*models.Recipe, len(ids))
	for i := range rows {
		if p, ok := position[rows[i].RecipeID]; ok {
			ordered[p] = &rows[i]
		}
	}

	out := make([]models.Recipe, 0, len(rows))
	for _, r := range ordered {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// recipeExists reports whether a recipe with id exists.
func recipeExists(ctx context.Context, db *gorm.DB, id int64) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Recipe{}).Where("recipe_id = ?", id).Count(&count).Error; err != nil {
		return storageErr(err, "check recipe")
	}
	if count == 0 {
		return storageErr(gorm.ErrRecordNotFound, "recipe")
	}
	return nil
}
