package service_test

import (
	"context"
	"testing"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createPredefined(t *testing.T, db *gorm.DB, name string, criteria models.FilterCriteria) *models.PredefinedCatalog {
	t.Helper()
	typ := models.PredefinedCatalogType{Name: "Meal Type"}
	require.NoError(t, db.Where("name = ?", typ.Name).FirstOrCreate(&typ).Error)
	pc := &models.PredefinedCatalog{TypeID: typ.ID, Name: name, FilterCriteria: criteria}
	require.NoError(t, db.Create(pc).Error)
	return pc
}

func TestResolvePredefinedCatalog(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testhelpers.CreateTestRecipe(t, db, 1, "A", testhelpers.WithTotalMins(10), testhelpers.WithCategory(db, "Dessert"))
	testhelpers.CreateTestRecipe(t, db, 2, "B", testhelpers.WithTotalMins(30), testhelpers.WithCategory(db, "Dessert"))
	testhelpers.CreateTestRecipe(t, db, 3, "C", testhelpers.WithTotalMins(45), testhelpers.WithCategory(db, "Breakfast"))
	testhelpers.CreateTestRecipe(t, db, 4, "D")

	svc := service.NewPredefinedService(db)
	ctx := context.Background()

	tests := []struct {
		name     string
		criteria models.FilterCriteria
		want     []int64
	}{
		{"under 30", models.FilterCriteria{"total_mins_lt": 30}, []int64{1}},
		{"at most 30", models.FilterCriteria{"total_mins_lte": 30}, []int64{1, 2}},
		{"category ignores case", models.FilterCriteria{"recipe_category": "dessert"}, []int64{1, 2}},
		{"conjunction", models.FilterCriteria{"recipe_category": "Dessert", "total_mins_lt": 20}, []int64{1}},
		{"legacy key", models.FilterCriteria{"total_mins__lt": 30}, []int64{1}},
		{"empty matches all", models.FilterCriteria{}, []int64{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := createPredefined(t, db, tt.name, tt.criteria)
			got, err := svc.Resolve(ctx, pc.ID, service.Page{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, recipeIDs(got))
		})
	}

	t.Run("paging", func(t *testing.T) {
		pc := createPredefined(t, db, "paged", models.FilterCriteria{})
		got, err := svc.Resolve(ctx, pc.ID, service.Page{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 3}, recipeIDs(got))
	})
}

func TestResolveInvalidCriteria(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewPredefinedService(db)
	ctx := context.Background()

	for name, criteria := range map[string]models.FilterCriteria{
		"unknown key": {"cuisine": "thai"},
		"wrong type":  {"total_mins_lt": true},
		"blank name":  {"recipe_category": " "},
	} {
		pc := createPredefined(t, db, name, criteria)
		_, err := svc.Resolve(ctx, pc.ID, service.Page{})
		assert.ErrorIs(t, err, service.ErrInvalidFilter, name)
	}

	_, err := svc.Resolve(ctx, 9999, service.Page{})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRepairFilters(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewPredefinedService(db)
	ctx := context.Background()

	legacy := createPredefined(t, db, "Quick", models.FilterCriteria{"total_mins__lt": 30})
	both := createPredefined(t, db, "Both", models.FilterCriteria{"total_mins__lte": 99, "total_mins_lte": 20})
	createPredefined(t, db, "Clean", models.FilterCriteria{"recipe_category": "Dessert"})

	n, err := svc.RepairFilters(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := svc.Get(ctx, legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FilterCriteria{"total_mins_lt": float64(30)}, got.FilterCriteria)
	require.NotNil(t, got.Type)
	assert.Equal(t, "Meal Type", got.Type.Name)

	got, err = svc.Get(ctx, both.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FilterCriteria{"total_mins_lte": float64(20)}, got.FilterCriteria)

	n, err = svc.RepairFilters(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListPredefined(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := service.NewPredefinedService(db)
	ctx := context.Background()

	createPredefined(t, db, "Quick", models.FilterCriteria{"total_mins_lt": 30})
	createPredefined(t, db, "Sweet", models.FilterCriteria{"recipe_category": "Dessert"})

	types, err := svc.ListTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 1)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Quick", list[0].Name)
	require.NotNil(t, list[0].Type)
	assert.Equal(t, types[0].ID, list[0].Type.ID)
}
