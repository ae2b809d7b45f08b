package testhelpers

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of users made by CreateTestUser.
const TestPassword = "testpassword123"

// CreateTestUser creates a user with TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// RecipeOption customizes a recipe made by CreateTestRecipe.
type RecipeOption func(*models.Recipe)

// WithTotalMins sets the recipe's total time.
func WithTotalMins(m float64) RecipeOption {
	return func(r *models.Recipe) { r.TotalMins = &m }
}

// WithKeywords sets the recipe's keyword tags.
func WithKeywords(k ...string) RecipeOption {
	return func(r *models.Recipe) { r.Keywords = k }
}

// WithCategory puts the recipe in the named category, creating it if needed.
func WithCategory(db *gorm.DB, name string) RecipeOption {
	return func(r *models.Recipe) {
		cat := models.RecipeCategory{Name: name}
		db.Where("name = ?", name).FirstOrCreate(&cat)
		r.CategoryID = &cat.ID
	}
}

// WithIngredients attaches ingredients by name, creating missing ones.
func WithIngredients(db *gorm.DB, names ...string) RecipeOption {
	return func(r *models.Recipe) {
		for i, name := range names {
			ing := models.Ingredient{Name: name}
			db.Where("name = ?", name).FirstOrCreate(&ing)
			r.Ingredients = append(r.Ingredients, models.RecipeIngredient{
				IngredientID: ing.ID,
				Quantity:     "1",
				Position:     i,
			})
		}
	}
}

// CreateTestRecipe inserts a recipe. It does not build search index rows.
func CreateTestRecipe(t *testing.T, db *gorm.DB, id int64, name string, opts ...RecipeOption) *models.Recipe {
	t.Helper()
	r := &models.Recipe{
		RecipeID: id,
		Name:     name,
		Keywords: models.StringList{},
		Images:   models.StringList{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return r
}

// JSONMarshal marshals v or fails the test.
func JSONMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return b
}
