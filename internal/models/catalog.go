package models

import (
	"time"

	"github.com/google/uuid"
)

// Catalog is a user-created, ordered collection of recipes.
type Catalog struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:varchar(36);not null;uniqueIndex:idx_catalog_user_name" json:"-"`
	Name      string          `gorm:"size:255;not null;uniqueIndex:idx_catalog_user_name" json:"name"`
	CreatedAt time.Time       `json:"created_at"`
	Recipes   []CatalogRecipe `gorm:"foreignKey:CatalogID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Catalog) TableName() string {
	return "catalogs"
}

// CatalogRecipe is the membership of a recipe in a catalog. AddedAt and ID
// together give the insertion order.
type CatalogRecipe struct {
	ID        uint      `gorm:"primaryKey"`
	CatalogID uint      `gorm:"not null;uniqueIndex:idx_catalog_recipe"`
	RecipeID  int64     `gorm:"not null;uniqueIndex:idx_catalog_recipe;index"`
	AddedAt   time.Time `gorm:"not null;index"`
}

func (CatalogRecipe) TableName() string {
	return "catalog_recipes"
}

// Favorite marks a recipe as favorited by a user.
type Favorite struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID    int64     `gorm:"not null;uniqueIndex:idx_favorite_user_recipe;index"`
	FavoritedAt time.Time `gorm:"not null"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// RecipeAccess is the last time a user opened a recipe. There is at most one
// row per (user, recipe).
type RecipeAccess struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_access_user_recipe;index:idx_access_user_time,priority:1"`
	RecipeID   int64     `gorm:"not null;uniqueIndex:idx_access_user_recipe"`
	AccessedAt time.Time `gorm:"not null;index:idx_access_user_time,priority:2"`
}

func (RecipeAccess) TableName() string {
	return "recipe_accesses"
}
