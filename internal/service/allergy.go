package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"gorm.io/gorm"
)

// AllergyService manages the allergen list and user allergies
type AllergyService struct {
	db *gorm.DB
}

// NewAllergyService creates a new AllergyService instance
func NewAllergyService(db *gorm.DB) *AllergyService {
	return &AllergyService{db: db}
}

// ListAllergens returns every known allergen by name.
func (s *AllergyService) ListAllergens(ctx context.Context) ([]models.Allergen, error) {
	var allergens []models.Allergen
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&allergens).Error; err != nil {
		return nil, storageErr(err, "list allergens")
	}
	return allergens, nil
}

// GetUserAllergies returns the allergens the user avoids.
func (s *AllergyService) GetUserAllergies(ctx context.Context, userID uuid.UUID) ([]models.Allergen, error) {
	var allergens []models.Allergen
	if err := s.db.WithContext(ctx).
		Joins("JOIN user_allergies ON user_allergies.allergen_id = allergens.id").
		Where("user_allergies.user_id = ?", userID).
		Order("allergens.name ASC").
		Find(&allergens).Error; err != nil {
		return nil, storageErr(err, "list user allergies")
	}
	return allergens, nil
}

// SetUserAllergies replaces the user's allergies with allergenIDs.
func (s *AllergyService) SetUserAllergies(ctx context.Context, userID uuid.UUID, allergenIDs []uint) ([]models.Allergen, error) {
	unique := make([]uint, 0, len(allergenIDs))
	seen := make(map[uint]struct{}, len(allergenIDs))
	for _, id := range allergenIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(unique) > 0 {
			var count int64
			if err := tx.Model(&models.Allergen{}).Where("id IN ?", unique).Count(&count).Error; err != nil {
				return storageErr(err, "check allergens")
			}
			if int(count) != len(unique) {
				return fmt.Errorf("allergen: %w", ErrNotFound)
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.UserAllergy{}).Error; err != nil {
			return storageErr(err, "clear user allergies")
		}
		for _, id := range unique {
			if err := tx.Create(&models.UserAllergy{UserID: userID, AllergenID: id}).Error; err != nil {
				return storageErr(err, "add user allergy")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetUserAllergies(ctx, userID)
}
