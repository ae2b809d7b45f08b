package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-catalog/backend/internal/metrics"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxRecent is the number of recently viewed recipes kept per user.
const MaxRecent = 10

// RecencyService tracks the recipes each user opened most recently
type RecencyService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRecencyService creates a new RecencyService instance
func NewRecencyService(db *gorm.DB) *RecencyService {
	return &RecencyService{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// RecordAccess marks recipeID as opened by userID now and forgets the
// user's accesses beyond the MaxRecent newest. Both happen in one
// transaction, so a user never has more than MaxRecent rows.
func (s *RecencyService) RecordAccess(ctx context.Context, userID uuid.UUID, recipeID int64) error {
	now := s.now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize concurrent accesses by the same user. SQLite already
		// serializes writers.
		if tx.Dialector.Name() == "postgres" {
			var user models.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").Where("id = ?", userID).Take(&user).Error; err != nil {
				return storageErr(err, "user")
			}
		}

		access := models.RecipeAccess{UserID: userID, RecipeID: recipeID, AccessedAt: now}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"accessed_at"}),
		}).Create(&access).Error; err != nil {
			return storageErr(err, "record access")
		}

		keep := tx.Model(&models.RecipeAccess{}).
			Select("id").
			Where("user_id = ?", userID).
			Order("accessed_at DESC, id DESC").
			Limit(MaxRecent)
		res := tx.Where("user_id = ? AND id NOT IN (?)", userID, keep).Delete(&models.RecipeAccess{})
		if res.Error != nil {
			return storageErr(res.Error, "trim accesses")
		}
		if res.RowsAffected > 0 {
			metrics.RecentAccessTrimmed.Add(float64(res.RowsAffected))
		}
		return nil
	})
	return err
}

// ListRecent returns the user's most recently opened recipes, newest first.
// limit is clamped to 1..MaxRecent.
func (s *RecencyService) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Recipe, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxRecent {
		limit = MaxRecent
	}

	var ids []int64
	if err := s.db.WithContext(ctx).
		Model(&models.RecipeAccess{}).
		Where("user_id = ?", userID).
		Order("accessed_at DESC, id DESC").
		Limit(limit).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, storageErr(err, "list recent")
	}
	return recipesByIDs(ctx, s.db, ids)
}
