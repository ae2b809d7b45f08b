package models

import (
	"time"

	pgvector "github.com/pgvector/pgvector-go"
)

// DefaultImage is returned for recipes that were imported without any image.
const DefaultImage = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcQFL5uibOV8chTl50DVzJkzLrOdLXQQL9EoNw&s"

// RecipeCategory is a high-level grouping such as "Dessert" or "Breakfast".
type RecipeCategory struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (RecipeCategory) TableName() string {
	return "recipe_categories"
}

// Ingredient is a unique ingredient name shared across recipes.
type Ingredient struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:200;not null;uniqueIndex" json:"name"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// Recipe is keyed by the recipe_id of the source dataset, which never changes.
type Recipe struct {
	RecipeID            int64              `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	Name                string             `gorm:"size:500;not null" json:"name"`
	CookMins            *float64           `json:"cook_mins"`
	PrepMins            *float64           `json:"prep_mins"`
	TotalMins           *float64           `gorm:"index" json:"total_mins"`
	CategoryID          *uint              `gorm:"index" json:"-"`
	Category            *RecipeCategory    `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Calories            *float64           `json:"calories"`
	FatContent          *float64           `json:"fat_content"`
	SaturatedFatContent *float64           `json:"saturated_fat_content"`
	CholesterolContent  *float64           `json:"cholesterol_content"`
	SodiumContent       *float64           `json:"sodium_content"`
	CarbohydrateContent *float64           `json:"carbohydrate_content"`
	FiberContent        *float64           `json:"fiber_content"`
	SugarContent        *float64           `json:"sugar_content"`
	ProteinContent      *float64           `json:"protein_content"`
	Keywords            StringList         `gorm:"type:jsonb;not null;default:'[]'" json:"keywords"`
	Images              StringList         `gorm:"type:jsonb;not null;default:'[]'" json:"images"`
	Instructions        string             `gorm:"type:text" json:"instructions"`
	Ingredients         []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Embedding           *pgvector.Vector   `gorm:"type:vector(64)" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// Image returns the first image of the recipe or DefaultImage.
func (r *Recipe) Image() string {
	if len(r.Images) > 0 && r.Images[0] != "" {
		return r.Images[0]
	}
	return DefaultImage
}

// IngredientNames lists the names of the recipe's ingredients in display order.
// Ingredients must be preloaded with their Ingredient.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		if ri.Ingredient != nil {
			names = append(names, ri.Ingredient.Name)
		}
	}
	return names
}

// RecipeIngredient links a recipe to an ingredient with a free-form quantity.
type RecipeIngredient struct {
	ID           uint        `gorm:"primaryKey" json:"-"`
	RecipeID     int64       `gorm:"not null;index" json:"-"`
	IngredientID uint        `gorm:"not null;index" json:"-"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
	Quantity     string      `gorm:"size:100" json:"quantity"`
	Position     int         `gorm:"not null;default:0" json:"-"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// RecipeSearchTerm is one stemmed lexeme occurrence of the search index.
// Weight is "A" for the name and "B" for keywords and ingredient names.
type RecipeSearchTerm struct {
	ID       uint   `gorm:"primaryKey"`
	RecipeID int64  `gorm:"not null;index"`
	Lexeme   string `gorm:"size:100;not null;index"`
	Weight   string `gorm:"size:1;not null"`
	Position int    `gorm:"not null"`
}

func (RecipeSearchTerm) TableName() string {
	return "recipe_search_terms"
}
