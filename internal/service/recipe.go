package service

import (
	"context"
	"errors"

	"github.com/pageza/recipe-catalog/backend/internal/filter"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/search"
	"gorm.io/gorm"
)

// RecipeService handles recipe lookups
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// GetRecipe retrieves a recipe with its category and ingredients
func (s *RecipeService) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Preload("Ingredients.Ingredient").
		Where("recipe_id = ?", id).
		Take(&recipe).Error
	if err != nil {
		return nil, storageErr(err, "recipe")
	}
	return &recipe, nil
}

// ListRecipes lists recipes matching spec, ordered by recipe id
func (s *RecipeService) ListRecipes(ctx context.Context, spec filter.Spec, page Page) ([]models.Recipe, error) {
	return ListMatching(ctx, s.db, spec, page)
}

// SimilarRecipes returns the recipes closest to id, nearest first. A recipe
// that has not been indexed yet has no similar recipes.
func (s *RecipeService) SimilarRecipes(ctx context.Context, id int64, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	ids, err := search.Similar(ctx, s.db, id, limit)
	switch {
	case errors.Is(err, search.ErrNoEmbedding):
		return []models.Recipe{}, nil
	case err != nil:
		return nil, storageErr(err, "similar recipes")
	}
	return recipesByIDs(ctx, s.db, ids)
}
