package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/service"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// DemoPicks is the number of recipes put in each demo catalog and the
	// number of demo favorites per user.
	DemoPicks = 3
	// DemoPassword is the password of every demo user.
	DemoPassword = "testpassword123"
)

// DemoCatalogs are created for every user by Demo.
var DemoCatalogs = []string{"Quick Meals", "Desserts", "Healthy Picks"}

// ErrNotEnoughRecipes is returned by Demo when fewer than DemoPicks recipes
// are loaded.
var ErrNotEnoughRecipes = errors.New("not enough recipes for demo data")

// DemoUser is an account created by Users.
type DemoUser struct {
	Username string
	Email    string
}

// DefaultDemoUsers are the accounts of a development environment.
var DefaultDemoUsers = []DemoUser{
	{"johndoe", "john.doe@example.com"},
	{"janesmith", "jane.smith@example.com"},
	{"bobwilson", "bob.wilson@example.com"},
	{"alicecooper", "alice.cooper@example.com"},
}

// Users signs up every demo user with DemoPassword. Existing usernames are
// skipped. It returns the number of users created.
func Users(ctx context.Context, auth *service.AuthService, users []DemoUser) (int, error) {
	log := logging.Ctx(ctx)
	created := 0
	for _, u := range users {
		if _, _, err := auth.Signup(ctx, u.Username, u.Email, DemoPassword); err != nil {
			if errors.Is(err, service.ErrConflict) {
				log.Info().Str("username", u.Username).Msg("user already exists, skipping")
				continue
			}
			return created, fmt.Errorf("failed to create user %q: %w", u.Username, err)
		}
		created++
		log.Info().Str("username", u.Username).Msg("created demo user")
	}
	return created, nil
}

// DemoResult summarizes a Demo run.
type DemoResult struct {
	Users     int
	Catalogs  int
	Favorites int
}

// Demo gives every user the DemoCatalogs, each refilled with DemoPicks
// random recipes, and favorites the first DemoPicks recipes by id.
func Demo(ctx context.Context, db *gorm.DB, rng *rand.Rand) (DemoResult, error) {
	var res DemoResult

	var recipeIDs []int64
	if err := db.WithContext(ctx).Model(&models.Recipe{}).Order("recipe_id ASC").Pluck("recipe_id", &recipeIDs).Error; err != nil {
		return res, fmt.Errorf("failed to list recipes: %w", err)
	}
	if len(recipeIDs) < DemoPicks {
		return res, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughRecipes, DemoPicks, len(recipeIDs))
	}

	var users []models.User
	if err := db.WithContext(ctx).Select("id", "username").Order("created_at ASC").Find(&users).Error; err != nil {
		return res, fmt.Errorf("failed to list users: %w", err)
	}

	now := time.Now().UTC()
	for _, user := range users {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, name := range DemoCatalogs {
				catalog := models.Catalog{UserID: user.ID, Name: name}
				if err := tx.Where("user_id = ? AND name = ?", user.ID, name).
					Attrs(models.Catalog{CreatedAt: now}).
					FirstOrCreate(&catalog).Error; err != nil {
					return fmt.Errorf("failed to ensure catalog %q: %w", name, err)
				}
				if err := tx.Where("catalog_id = ?", catalog.ID).Delete(&models.CatalogRecipe{}).Error; err != nil {
					return fmt.Errorf("failed to clear catalog %q: %w", name, err)
				}

				picks := sample(rng, recipeIDs, DemoPicks)
				members := make([]models.CatalogRecipe, len(picks))
				for i, id := range picks {
					members[i] = models.CatalogRecipe{CatalogID: catalog.ID, RecipeID: id, AddedAt: now}
				}
				if err := tx.Create(&members).Error; err != nil {
					return fmt.Errorf("failed to fill catalog %q: %w", name, err)
				}
				res.Catalogs++
			}

			for _, id := range recipeIDs[:DemoPicks] {
				r := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
					DoNothing: true,
				}).Create(&models.Favorite{UserID: user.ID, RecipeID: id, FavoritedAt: now})
				if r.Error != nil {
					return fmt.Errorf("failed to favorite recipe %d: %w", id, r.Error)
				}
				res.Favorites += int(r.RowsAffected)
			}
			return nil
		})
		if err != nil {
			return res, fmt.Errorf("user %s: %w", user.Username, err)
		}
		res.Users++
	}
	return res, nil
}

// sample returns n distinct ids chosen at random.
func sample(rng *rand.Rand, ids []int64, n int) []int64 {
	seen := make(map[int]struct{}, n)
	out := make([]int64, 0, n)
	for len(out) < n {
		j := rng.IntN(len(ids))
		if _, dup := seen[j]; dup {
			continue
		}
		seen[j] = struct{}{}
		out = append(out, ids[j])
	}
	return out
}
