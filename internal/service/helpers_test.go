package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/search"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// tick returns a clock that advances one second per call.
func tick() func() time.Time {
	t := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func reindex(t *testing.T, db *gorm.DB) {
	t.Helper()
	_, err := search.NewIndexer(db, nil).Reindex(context.Background(), 100)
	require.NoError(t, err)
}

func recipeIDs(recipes []models.Recipe) []int64 {
	ids := make([]int64, len(recipes))
	for i, r := range recipes {
		ids[i] = r.RecipeID
	}
	return ids
}
