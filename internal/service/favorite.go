package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteService manages the favorite recipes of users
type FavoriteService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFavoriteService creates a new FavoriteService instance
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Add favorites a recipe. Favoriting twice is the same as once.
func (s *FavoriteService) Add(ctx context.Context, userID uuid.UUID, recipeID int64) (created bool, err error) {
	if err := recipeExists(ctx, s.db, recipeID); err != nil {
		return false, err
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoNothing: true,
	}).Create(&models.Favorite{UserID: userID, RecipeID: recipeID, FavoritedAt: s.now()})
	if res.Error != nil {
		return false, storageErr(res.Error, "add favorite")
	}
	return res.RowsAffected == 1, nil
}

// Remove unfavorites a recipe. Removing a recipe that is not a favorite is
// not an error.
func (s *FavoriteService) Remove(ctx context.Context, userID uuid.UUID, recipeID int64) error {
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{}).Error; err != nil {
		return storageErr(err, "remove favorite")
	}
	return nil
}

// List returns the user's favorites, most recently favorited first.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var ids []int64
	if err := s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("favorited_at DESC, id DESC").
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, storageErr(err, "list favorites")
	}
	return recipesByIDs(ctx, s.db, ids)
}

// IsFavorite reports whether the user favorited the recipe.
func (s *FavoriteService) IsFavorite(ctx context.Context, userID uuid.UUID, recipeID int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, storageErr(err, "check favorite")
	}
	return count > 0, nil
}
