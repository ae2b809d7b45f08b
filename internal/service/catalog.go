package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RemoveResult is the outcome of removing a recipe from a catalog.
type RemoveResult int

const (
	// Removed means the recipe was a member and is gone now.
	Removed RemoveResult = iota
	// NotMember means there was nothing to remove.
	NotMember
)

// ErrEmptyName is returned for a blank catalog name.
var ErrEmptyName = errors.New("catalog name must not be empty")

// CatalogService manages user catalogs and their membership
type CatalogService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create creates an empty catalog. Names are unique per user.
func (s *CatalogService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Catalog, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Catalog{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, storageErr(err, "check catalog name")
	}
	if count > 0 {
		return nil, fmt.Errorf("catalog %q: %w", name, ErrConflict)
	}

	catalog := &models.Catalog{UserID: userID, Name: name, CreatedAt: s.now()}
	if err := s.db.WithContext(ctx).Create(catalog).Error; err != nil {
		return nil, storageErr(err, "create catalog")
	}
	return catalog, nil
}

// List returns the user's catalogs, oldest first.
func (s *CatalogService) List(ctx context.Context, userID uuid.UUID) ([]models.Catalog, error) {
	var catalogs []models.Catalog
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&catalogs).Error; err != nil {
		return nil, storageErr(err, "list catalogs")
	}
	return catalogs, nil
}

// Get returns the catalog if it belongs to the user. Catalogs of other
// users are reported as not found.
func (s *CatalogService) Get(ctx context.Context, userID uuid.UUID, catalogID uint) (*models.Catalog, error) {
	return s.owned(s.db.WithContext(ctx), userID, catalogID)
}

func (s *CatalogService) owned(db *gorm.DB, userID uuid.UUID, catalogID uint) (*models.Catalog, error) {
	var catalog models.Catalog
	if err := db.Where("id = ? AND user_id = ?", catalogID, userID).Take(&catalog).Error; err != nil {
		return nil, storageErr(err, "catalog")
	}
	return &catalog, nil
}

// Delete removes the catalog and its memberships.
func (s *CatalogService) Delete(ctx context.Context, userID uuid.UUID, catalogID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.owned(tx, userID, catalogID); err != nil {
			return err
		}
		if err := tx.Where("catalog_id = ?", catalogID).Delete(&models.CatalogRecipe{}).Error; err != nil {
			return storageErr(err, "delete catalog recipes")
		}
		if err := tx.Delete(&models.Catalog{}, catalogID).Error; err != nil {
			return storageErr(err, "delete catalog")
		}
		return nil
	})
}

// Recipes returns the catalog's recipes in the order they were first added.
func (s *CatalogService) Recipes(ctx context.Context, userID uuid.UUID, catalogID uint) ([]models.Recipe, error) {
	if _, err := s.Get(ctx, userID, catalogID); err != nil {
		return nil, err
	}
	return s.members(ctx, catalogID)
}

func (s *CatalogService) members(ctx context.Context, catalogID uint) ([]models.Recipe, error) {
	var ids []int64
	if err := s.db.WithContext(ctx).
		Model(&models.CatalogRecipe{}).
		Where("catalog_id = ?", catalogID).
		Order("added_at ASC, id ASC").
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, storageErr(err, "list catalog recipes")
	}
	return recipesByIDs(ctx, s.db, ids)
}

// AddRecipe adds a recipe to the user's catalog. Adding a recipe that is
// already a member changes nothing; created reports whether a row was added.
func (s *CatalogService) AddRecipe(ctx context.Context, userID uuid.UUID, catalogID uint, recipeID int64) (created bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.owned(tx, userID, catalogID); err != nil {
			return err
		}
		if err := recipeExists(ctx, tx, recipeID); err != nil {
			return err
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "catalog_id"}, {Name: "recipe_id"}},
			DoNothing: true,
		}).Create(&models.CatalogRecipe{CatalogID: catalogID, RecipeID: recipeID, AddedAt: s.now()})
		if res.Error != nil {
			return storageErr(res.Error, "add catalog recipe")
		}
		created = res.RowsAffected == 1
		return nil
	})
	return created, err
}

// RemoveRecipe removes a recipe from the user's catalog.
func (s *CatalogService) RemoveRecipe(ctx context.Context, userID uuid.UUID, catalogID uint, recipeID int64) (RemoveResult, error) {
	result := NotMember
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.owned(tx, userID, catalogID); err != nil {
			return err
		}
		res := tx.Where("catalog_id = ? AND recipe_id = ?", catalogID, recipeID).Delete(&models.CatalogRecipe{})
		if res.Error != nil {
			return storageErr(res.Error, "remove catalog recipe")
		}
		if res.RowsAffected > 0 {
			result = Removed
		}
		return nil
	})
	return result, err
}
