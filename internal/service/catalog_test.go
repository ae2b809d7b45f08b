package service_test

import (
	"context"
	"testing"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCreate(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := testhelpers.CreateTestUser(t, db, "alice")
	bob := testhelpers.CreateTestUser(t, db, "bob")
	svc := service.NewCatalogService(db)
	ctx := context.Background()

	c, err := svc.Create(ctx, alice.ID, "  Weeknight  ")
	require.NoError(t, err)
	assert.Equal(t, "Weeknight", c.Name)
	assert.NotZero(t, c.ID)

	_, err = svc.Create(ctx, alice.ID, "Weeknight")
	assert.ErrorIs(t, err, service.ErrConflict)

	// names are unique per user only
	_, err = svc.Create(ctx, bob.ID, "Weeknight")
	assert.NoError(t, err)

	_, err = svc.Create(ctx, alice.ID, "   ")
	assert.ErrorIs(t, err, service.ErrEmptyName)

	list, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCatalogMembership(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	user := testhelpers.CreateTestUser(t, db, "alice")
	for _, id := range []int64{10, 20, 30} {
		testhelpers.CreateTestRecipe(t, db, id, "Recipe")
	}
	svc := service.NewCatalogService(db)
	svc.SetClock(tick())
	ctx := context.Background()

	c, err := svc.Create(ctx, user.ID, "Favorites")
	require.NoError(t, err)

	for _, id := range []int64{30, 10, 20} {
		created, err := svc.AddRecipe(ctx, user.ID, c.ID, id)
		require.NoError(t, err)
		assert.True(t, created)
	}

	created, err := svc.AddRecipe(ctx, user.ID, c.ID, 30)
	require.NoError(t, err)
	assert.False(t, created, "adding twice is a no-op")

	recipes, err := svc.Recipes(ctx, user.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{30, 10, 20}, recipeIDs(recipes))

	res, err := svc.RemoveRecipe(ctx, user.ID, c.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, service.Removed, res)

	res, err = svc.RemoveRecipe(ctx, user.ID, c.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, service.NotMember, res)

	recipes, err = svc.Recipes(ctx, user.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{30, 20}, recipeIDs(recipes))

	_, err = svc.AddRecipe(ctx, user.ID, c.ID, 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCatalogOwnership(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	alice := testhelpers.CreateTestUser(t, db, "alice")
	bob := testhelpers.CreateTestUser(t, db, "bob")
	testhelpers.CreateTestRecipe(t, db, 1, "Recipe")
	svc := service.NewCatalogService(db)
	ctx := context.Background()

	c, err := svc.Create(ctx, alice.ID, "Mine")
	require.NoError(t, err)

	_, err = svc.Get(ctx, bob.ID, c.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.Recipes(ctx, bob.ID, c.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.AddRecipe(ctx, bob.ID, c.ID, 1)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.RemoveRecipe(ctx, bob.ID, c.ID, 1)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, bob.ID, c.ID), service.ErrNotFound)

	_, err = svc.Get(ctx, alice.ID, 12345)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCatalogDelete(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	user := testhelpers.CreateTestUser(t, db, "alice")
	testhelpers.CreateTestRecipe(t, db, 1, "Recipe")
	svc := service.NewCatalogService(db)
	ctx := context.Background()

	c, err := svc.Create(ctx, user.ID, "Temp")
	require.NoError(t, err)
	_, err = svc.AddRecipe(ctx, user.ID, c.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID, c.ID))

	_, err = svc.Get(ctx, user.ID, c.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.CatalogRecipe{}).Where("catalog_id = ?", c.ID).Count(&count).Error)
	assert.Zero(t, count)

	// the recipe itself is untouched
	require.NoError(t, db.Model(&models.Recipe{}).Where("recipe_id = ?", 1).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
