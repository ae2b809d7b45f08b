package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipe-catalog/backend/internal/filter"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Signup(ctx context.Context, username, email, password string) (*models.User, *types.TokenPair, error)
	Login(ctx context.Context, username, password string) (*models.User, *types.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// ISearchService defines the interface for ranked recipe search
type ISearchService interface {
	Search(ctx context.Context, query string, excludeID *int64, limit int) ([]models.Recipe, error)
}

// IRecipeService defines the interface for recipe lookups
type IRecipeService interface {
	GetRecipe(ctx context.Context, id int64) (*models.Recipe, error)
	ListRecipes(ctx context.Context, spec filter.Spec, page Page) ([]models.Recipe, error)
	SimilarRecipes(ctx context.Context, id int64, limit int) ([]models.Recipe, error)
}

// IRecencyService defines the interface for recently viewed recipes
type IRecencyService interface {
	RecordAccess(ctx context.Context, userID uuid.UUID, recipeID int64) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.Recipe, error)
}

// ICatalogService defines the interface for user catalogs
type ICatalogService interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (*models.Catalog, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Catalog, error)
	Get(ctx context.Context, userID uuid.UUID, catalogID uint) (*models.Catalog, error)
	Delete(ctx context.Context, userID uuid.UUID, catalogID uint) error
	Recipes(ctx context.Context, userID uuid.UUID, catalogID uint) ([]models.Recipe, error)
	AddRecipe(ctx context.Context, userID uuid.UUID, catalogID uint, recipeID int64) (bool, error)
	RemoveRecipe(ctx context.Context, userID uuid.UUID, catalogID uint, recipeID int64) (RemoveResult, error)
}

// IFavoriteService defines the interface for favorite recipes
type IFavoriteService interface {
	Add(ctx context.Context, userID uuid.UUID, recipeID int64) (bool, error)
	Remove(ctx context.Context, userID uuid.UUID, recipeID int64) error
	List(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	IsFavorite(ctx context.Context, userID uuid.UUID, recipeID int64) (bool, error)
}

// IPredefinedService defines the interface for predefined catalogs
type IPredefinedService interface {
	ListTypes(ctx context.Context) ([]models.PredefinedCatalogType, error)
	List(ctx context.Context) ([]models.PredefinedCatalog, error)
	Get(ctx context.Context, id uint) (*models.PredefinedCatalog, error)
	Resolve(ctx context.Context, id uint, page Page) ([]models.Recipe, error)
}

// IAllergyService defines the interface for allergens and user allergies
type IAllergyService interface {
	ListAllergens(ctx context.Context) ([]models.Allergen, error)
	GetUserAllergies(ctx context.Context, userID uuid.UUID) ([]models.Allergen, error)
	SetUserAllergies(ctx context.Context, userID uuid.UUID, allergenIDs []uint) ([]models.Allergen, error)
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ ISearchService     = (*SearchService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
	_ IRecencyService    = (*RecencyService)(nil)
	_ ICatalogService    = (*CatalogService)(nil)
	_ IFavoriteService   = (*FavoriteService)(nil)
	_ IPredefinedService = (*PredefinedService)(nil)
	_ IAllergyService    = (*AllergyService)(nil)
)
