package testhelpers

import (
	"testing"
	"time"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupSQLite(t *testing.T) {
	db := SetupSQLite(t)

	user := CreateTestUser(t, db, "alice")
	assert.NotEqual(t, "", user.ID.String())

	r := CreateTestRecipe(t, db, 42, "Baked Ziti",
		WithTotalMins(30),
		WithKeywords("pasta", "oven"),
		WithCategory(db, "Dinner"),
		WithIngredients(db, "ziti", "ricotta"),
	)

	var got models.Recipe
	require.NoError(t, db.Preload("Ingredients.Ingredient").Preload("Category").First(&got, "recipe_id = ?", r.RecipeID).Error)
	assert.Equal(t, "Baked Ziti", got.Name)
	assert.Equal(t, models.StringList{"pasta", "oven"}, got.Keywords)
	assert.Equal(t, []string{"ziti", "ricotta"}, got.IngredientNames())
	require.NotNil(t, got.Category)
	assert.Equal(t, "Dinner", got.Category.Name)
	assert.Equal(t, models.DefaultImage, got.Image())
}

func TestSQLiteRecipeMemberships(t *testing.T) {
	db := SetupSQLite(t)
	user := CreateTestUser(t, db, "carol")

	require.NoError(t, db.Create(&models.Recipe{RecipeID: 7, Name: "Lemonade"}).Error)
	CreateTestRecipe(t, db, 8, "Iced Tea")

	catalog := models.Catalog{UserID: user.ID, Name: "Drinks"}
	require.NoError(t, db.Create(&catalog).Error)
	now := time.Now()
	require.NoError(t, db.Create(&models.CatalogRecipe{CatalogID: catalog.ID, RecipeID: 7, AddedAt: now}).Error)
	require.NoError(t, db.Create(&models.Favorite{UserID: user.ID, RecipeID: 7, FavoritedAt: now}).Error)

	var ddl string
	require.NoError(t, db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'recipes'").Scan(&ddl).Error)
	assert.NotContains(t, ddl, "favorites")
	assert.NotContains(t, ddl, "catalog_recipes")

	var members, favorites int64
	require.NoError(t, db.Model(&models.CatalogRecipe{}).Where("catalog_id = ?", catalog.ID).Count(&members).Error)
	require.NoError(t, db.Model(&models.Favorite{}).Where("user_id = ?", user.ID).Count(&favorites).Error)
	assert.Equal(t, int64(1), members)
	assert.Equal(t, int64(1), favorites)
}

func TestSetupSQLiteIsolated(t *testing.T) {
	a := SetupSQLite(t)
	b := SetupSQLite(t)
	CreateTestUser(t, a, "bob")

	var count int64
	require.NoError(t, b.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSetupPostgres(t *testing.T) {
	db := SetupPostgres(t)

	CreateTestRecipe(t, db, 1, "Pancakes", WithKeywords("breakfast"))
	var got models.Recipe
	require.NoError(t, db.First(&got, "recipe_id = ?", 1).Error)
	assert.Equal(t, models.StringList{"breakfast"}, got.Keywords)
}
