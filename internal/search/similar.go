package search

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoEmbedding means the recipe has not been indexed yet.
var ErrNoEmbedding = errors.New("recipe has no embedding")

// Similar returns the ids of the limit recipes closest to recipeID by
// embedding distance, nearest first. PostgreSQL orders with pgvector's <->
// operator; other dialects compare the vectors in process.
func Similar(ctx context.Context, db *gorm.DB, recipeID int64, limit int) ([]int64, error) {
	db = db.WithContext(ctx)

	var target models.Recipe
	if err := db.Select("recipe_id", "embedding").Where("recipe_id = ?", recipeID).Take(&target).Error; err != nil {
		return nil, err
	}
	if target.Embedding == nil {
		return nil, ErrNoEmbedding
	}

	if db.Dialector.Name() == "postgres" {
		var ids []int64
		err := db.Model(&models.Recipe{}).
			Where("recipe_id <> ? AND embedding IS NOT NULL", recipeID).
			Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?, recipe_id", Vars: []interface{}{*target.Embedding}},
			}).
			Limit(limit).
			Pluck("recipe_id", &ids).Error
		if err != nil {
			return nil, fmt.Errorf("failed to query nearest recipes: %w", err)
		}
		return ids, nil
	}

	var candidates []models.Recipe
	if err := db.Select("recipe_id", "embedding").
		Where("recipe_id <> ? AND embedding IS NOT NULL", recipeID).
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to load embeddings: %w", err)
	}
	return nearest(*target.Embedding, candidates, limit), nil
}

func nearest(target pgvector.Vector, candidates []models.Recipe, limit int) []int64 {
	type scored struct {
		id   int64
		dist float64
	}
	all := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.Embedding == nil {
			continue
		}
		all = append(all, scored{id: c.RecipeID, dist: Distance(target, *c.Embedding)})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].dist != all[j].dist {
			return all[i].dist < all[j].dist
		}
		return all[i].id < all[j].id
	})
	if len(all) > limit {
		all = all[:limit]
	}
	ids := make([]int64, len(all))
	for i, s := range all {
		ids[i] = s.id
	}
	return ids
}
