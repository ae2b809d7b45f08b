package search

import (
	"context"
	"testing"

	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedIndexed(t *testing.T) *gorm.DB {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	testhelpers.CreateTestRecipe(t, db, 10, "Baked Ziti", testhelpers.WithKeywords("pasta", "oven"))
	testhelpers.CreateTestRecipe(t, db, 20, "Chicken Soup", testhelpers.WithIngredients(db, "chicken", "carrot"))
	testhelpers.CreateTestRecipe(t, db, 30, "Carrot Cake", testhelpers.WithKeywords("dessert", "baking"))
	testhelpers.CreateTestRecipe(t, db, 40, "Roast Chicken")
	testhelpers.CreateTestRecipe(t, db, 50, "Lemonade")

	_, err := NewIndexer(db, nil).Reindex(context.Background(), 100)
	require.NoError(t, err)
	return db
}

func ids(hits []Hit) []int64 {
	out := make([]int64, len(hits))
	for i, h := range hits {
		out[i] = h.RecipeID
	}
	return out
}

func TestRankStemmedMatch(t *testing.T) {
	db := seedIndexed(t)

	hits, err := Rank(context.Background(), db, QueryLexemes("bake"), nil, 10)
	require.NoError(t, err)
	// name match outranks keyword match
	assert.Equal(t, []int64{10, 30}, ids(hits))
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	assert.InDelta(t, 0.4, hits[1].Score, 1e-9)
}

func TestRankOrdersTiesByRecipeID(t *testing.T) {
	db := seedIndexed(t)

	hits, err := Rank(context.Background(), db, QueryLexemes("chicken"), nil, 10)
	require.NoError(t, err)
	// Roast Chicken: name match (1.0); Chicken Soup: name and ingredient (1.0)
	assert.Equal(t, []int64{20, 40}, ids(hits))
}

func TestRankExcludesAndLimits(t *testing.T) {
	db := seedIndexed(t)
	exclude := int64(20)

	hits, err := Rank(context.Background(), db, QueryLexemes("chicken carrot"), &exclude, 10)
	require.NoError(t, err)
	assert.NotContains(t, ids(hits), int64(20))
	assert.Equal(t, []int64{30, 40}, ids(hits))

	hits, err = Rank(context.Background(), db, QueryLexemes("chicken carrot"), nil, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{20}, ids(hits))
}

func TestRankThreshold(t *testing.T) {
	db := seedIndexed(t)

	// a single keyword hit among five query lexemes scores 0.08
	hits, err := Rank(context.Background(), db, QueryLexemes("pasta grape melon kiwi plum"), nil, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	// among four it scores exactly the minimum and is kept
	hits, err = Rank(context.Background(), db, QueryLexemes("pasta grape melon kiwi"), nil, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, ids(hits))
}

func TestRankNoLexemes(t *testing.T) {
	db := seedIndexed(t)
	hits, err := Rank(context.Background(), db, nil, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestTermScore(t *testing.T) {
	assert.InDelta(t, 1.0, termScore(1, 0), 1e-9)
	assert.InDelta(t, 1.0, termScore(1, 3), 1e-9)
	assert.InDelta(t, 0.4, termScore(0, 1), 1e-9)
	assert.InDelta(t, 0.64, termScore(0, 2), 1e-9)
	assert.InDelta(t, 0.0, termScore(0, 0), 1e-9)
}
