package service_test

import (
	"context"
	"testing"

	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	user := testhelpers.CreateTestUser(t, db, "alice")
	for _, id := range []int64{1, 2, 3} {
		testhelpers.CreateTestRecipe(t, db, id, "Recipe")
	}
	svc := service.NewFavoriteService(db)
	svc.SetClock(tick())
	ctx := context.Background()

	for _, id := range []int64{2, 1, 3} {
		created, err := svc.Add(ctx, user.ID, id)
		require.NoError(t, err)
		assert.True(t, created)
	}
	created, err := svc.Add(ctx, user.ID, 2)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.Add(ctx, user.ID, 404)
	assert.ErrorIs(t, err, service.ErrNotFound)

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, recipeIDs(list))

	fav, err := svc.IsFavorite(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.True(t, fav)

	require.NoError(t, svc.Remove(ctx, user.ID, 1))
	require.NoError(t, svc.Remove(ctx, user.ID, 1))

	fav, err = svc.IsFavorite(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.False(t, fav)

	list, err = svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, recipeIDs(list))
}
