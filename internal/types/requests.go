package types

// SignupRequest represents the request body for creating an account
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for obtaining a token pair
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token for refresh and logout
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// CreateCatalogRequest represents the request body for creating a catalog
type CreateCatalogRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// RecipeRefRequest names a recipe to add to a catalog or to favorites
type RecipeRefRequest struct {
	RecipeID *int64 `json:"recipe_id" binding:"required"`
}

// UpdateAllergiesRequest replaces the caller's allergies
type UpdateAllergiesRequest struct {
	AllergenIDs []uint `json:"allergen_ids"`
}
