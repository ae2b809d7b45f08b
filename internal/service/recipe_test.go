package service_test

import (
	"context"
	"testing"

	"github.com/pageza/recipe-catalog/backend/internal/filter"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRecipe(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testhelpers.CreateTestRecipe(t, db, 7, "Garlic Bread",
		testhelpers.WithCategory(db, "Bread"),
		testhelpers.WithIngredients(db, "garlic", "butter", "bread"))

	svc := service.NewRecipeService(db)
	r, err := svc.GetRecipe(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Garlic Bread", r.Name)
	require.NotNil(t, r.Category)
	assert.Equal(t, "Bread", r.Category.Name)
	assert.Equal(t, []string{"garlic", "butter", "bread"}, r.IngredientNames())

	_, err = svc.GetRecipe(context.Background(), 8)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListRecipes(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testhelpers.CreateTestRecipe(t, db, 3, "C", testhelpers.WithTotalMins(45))
	testhelpers.CreateTestRecipe(t, db, 1, "A", testhelpers.WithTotalMins(10))
	testhelpers.CreateTestRecipe(t, db, 2, "B", testhelpers.WithTotalMins(30))

	svc := service.NewRecipeService(db)
	ctx := context.Background()

	all, err := svc.ListRecipes(ctx, nil, service.Page{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, recipeIDs(all))

	spec, err := filter.ParseStrings(map[string]string{"total_mins_lte": "30", "recipe_category": ""})
	require.NoError(t, err)
	quick, err := svc.ListRecipes(ctx, spec, service.Page{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, recipeIDs(quick))
}

func TestSimilarRecipes(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testhelpers.CreateTestRecipe(t, db, 1, "Garlic Bread", testhelpers.WithIngredients(db, "garlic", "bread"))
	testhelpers.CreateTestRecipe(t, db, 2, "Garlic Toast", testhelpers.WithIngredients(db, "garlic", "bread"))
	testhelpers.CreateTestRecipe(t, db, 3, "Fruit Salad", testhelpers.WithIngredients(db, "apple", "melon"))

	svc := service.NewRecipeService(db)
	ctx := context.Background()

	// nothing indexed yet
	got, err := svc.SimilarRecipes(ctx, 1, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	reindex(t, db)

	got, err = svc.SimilarRecipes(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].RecipeID)
	for _, r := range got {
		assert.NotEqual(t, int64(1), r.RecipeID)
	}
}
