package search

import (
	"context"
	"testing"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTermsWeights(t *testing.T) {
	r := &models.Recipe{
		RecipeID: 7,
		Name:     "Garlic Bread",
		Keywords: models.StringList{"Easy"},
		Ingredients: []models.RecipeIngredient{
			{Ingredient: &models.Ingredient{Name: "garlic"}},
			{Ingredient: &models.Ingredient{Name: "butter"}},
		},
	}

	terms := BuildTerms(r)
	got := map[string][]string{}
	for _, term := range terms {
		assert.Equal(t, int64(7), term.RecipeID)
		got[term.Weight] = append(got[term.Weight], term.Lexeme)
	}
	assert.Equal(t, []string{"garlic", "bread"}, got[WeightA])
	assert.Equal(t, []string{"easi", "garlic", "butter"}, got[WeightB])

	// positions strictly increase across fields
	for i := 1; i < len(terms); i++ {
		assert.Greater(t, terms[i].Position, terms[i-1].Position)
	}
}

func TestIndexAndReindex(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	r := testhelpers.CreateTestRecipe(t, db, 1, "Baked Ziti",
		testhelpers.WithKeywords("pasta"),
		testhelpers.WithIngredients(db, "ricotta"),
	)
	testhelpers.CreateTestRecipe(t, db, 2, "Lemonade")

	ix := NewIndexer(db, nil)
	n, err := ix.Reindex(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var count int64
	require.NoError(t, db.Model(&models.RecipeSearchTerm{}).Where("recipe_id = ?", r.RecipeID).Count(&count).Error)
	assert.Equal(t, int64(4), count)

	var stored models.Recipe
	require.NoError(t, db.First(&stored, "recipe_id = ?", r.RecipeID).Error)
	require.NotNil(t, stored.Embedding)
	assert.Len(t, stored.Embedding.Slice(), Dimensions)

	// reindexing replaces rows instead of duplicating them
	_, err = ix.Reindex(context.Background(), 10)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.RecipeSearchTerm{}).Where("recipe_id = ?", r.RecipeID).Count(&count).Error)
	assert.Equal(t, int64(4), count)
}
