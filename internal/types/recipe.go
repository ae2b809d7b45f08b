package types

import (
	"time"

	"github.com/pageza/recipe-catalog/backend/internal/models"
)

// RecipeSummary is the compact recipe shape used by every list endpoint
type RecipeSummary struct {
	RecipeID  int64    `json:"recipe_id"`
	Name      string   `json:"name"`
	Image     string   `json:"image"`
	Calories  *float64 `json:"calories"`
	TotalMins *float64 `json:"total_mins"`
}

// NewRecipeSummary builds the summary of r
func NewRecipeSummary(r *models.Recipe) RecipeSummary {
	return RecipeSummary{
		RecipeID:  r.RecipeID,
		Name:      r.Name,
		Image:     r.Image(),
		Calories:  r.Calories,
		TotalMins: r.TotalMins,
	}
}

// NewRecipeSummaries maps recipes to summaries, keeping their order
func NewRecipeSummaries(recipes []models.Recipe) []RecipeSummary {
	out := make([]RecipeSummary, len(recipes))
	for i := range recipes {
		out[i] = NewRecipeSummary(&recipes[i])
	}
	return out
}

// IngredientLine is one ingredient of a recipe detail
type IngredientLine struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// RecipeDetail is the full recipe as shown on its page
type RecipeDetail struct {
	RecipeID            int64            `json:"recipe_id"`
	Name                string           `json:"name"`
	Category            string           `json:"category"`
	Image               string           `json:"image"`
	Images              []string         `json:"images"`
	Keywords            []string         `json:"keywords"`
	CookMins            *float64         `json:"cook_mins"`
	PrepMins            *float64         `json:"prep_mins"`
	TotalMins           *float64         `json:"total_mins"`
	Calories            *float64         `json:"calories"`
	FatContent          *float64         `json:"fat_content"`
	SaturatedFatContent *float64         `json:"saturated_fat_content"`
	CholesterolContent  *float64         `json:"cholesterol_content"`
	SodiumContent       *float64         `json:"sodium_content"`
	CarbohydrateContent *float64         `json:"carbohydrate_content"`
	FiberContent        *float64         `json:"fiber_content"`
	SugarContent        *float64         `json:"sugar_content"`
	ProteinContent      *float64         `json:"protein_content"`
	Instructions        string           `json:"instructions"`
	Ingredients         []IngredientLine `json:"ingredients"`
	IsFavorite          bool             `json:"is_favorite"`
}

// NewRecipeDetail builds the detail view of r. Category and ingredients must
// be preloaded.
func NewRecipeDetail(r *models.Recipe, isFavorite bool) RecipeDetail {
	d := RecipeDetail{
		RecipeID:            r.RecipeID,
		Name:                r.Name,
		Image:               r.Image(),
		Images:              []string(r.Images),
		Keywords:            []string(r.Keywords),
		CookMins:            r.CookMins,
		PrepMins:            r.PrepMins,
		TotalMins:           r.TotalMins,
		Calories:            r.Calories,
		FatContent:          r.FatContent,
		SaturatedFatContent: r.SaturatedFatContent,
		CholesterolContent:  r.CholesterolContent,
		SodiumContent:       r.SodiumContent,
		CarbohydrateContent: r.CarbohydrateContent,
		FiberContent:        r.FiberContent,
		SugarContent:        r.SugarContent,
		ProteinContent:      r.ProteinContent,
		Instructions:        r.Instructions,
		Ingredients:         make([]IngredientLine, 0, len(r.Ingredients)),
		IsFavorite:          isFavorite,
	}
	if r.Category != nil {
		d.Category = r.Category.Name
	}
	for _, ri := range r.Ingredients {
		if ri.Ingredient != nil {
			d.Ingredients = append(d.Ingredients, IngredientLine{Name: ri.Ingredient.Name, Quantity: ri.Quantity})
		}
	}
	return d
}

// CatalogResponse is a user catalog with its recipes in insertion order
type CatalogResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"created_at"`
	Recipes   []RecipeSummary `json:"recipes"`
}

// PredefinedCatalogResponse is a predefined catalog as listed by the API
type PredefinedCatalogResponse struct {
	ID             uint           `json:"id"`
	Type           string         `json:"type"`
	TypeID         uint           `json:"type_id"`
	Name           string         `json:"name"`
	FilterCriteria map[string]any `json:"filter_criteria"`
}
