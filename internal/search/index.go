package search

import (
	"context"
	"fmt"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"gorm.io/gorm"
)

// Weights of the indexed fields.
const (
	WeightA = "A" // recipe name
	WeightB = "B" // keywords and ingredient names
)

// weightValue is the contribution of one occurrence of a lexeme.
var weightValue = map[string]float64{
	WeightA: 1.0,
	WeightB: 0.4,
}

// DefaultBatchSize is the number of recipes reindexed per transaction.
const DefaultBatchSize = 500

// BuildTerms computes the index rows of r. Keywords and ingredients must be
// loaded; ingredients need their Ingredient preloaded.
func BuildTerms(r *models.Recipe) []models.RecipeSearchTerm {
	var terms []models.RecipeSearchTerm
	offset := 0
	add := func(text, weight string) {
		tokens := Analyze(text)
		for _, tok := range tokens {
			terms = append(terms, models.RecipeSearchTerm{
				RecipeID: r.RecipeID,
				Lexeme:   tok.Lexeme,
				Weight:   weight,
				Position: offset + tok.Position,
			})
		}
		// Leave a gap so phrases never span two fields.
		if n := len(tokens); n > 0 {
			offset += tokens[n-1].Position + 2
		}
	}

	add(r.Name, WeightA)
	for _, k := range r.Keywords {
		add(k, WeightB)
	}
	for _, name := range r.IngredientNames() {
		add(name, WeightB)
	}
	return terms
}

// Indexer maintains the search index and embeddings.
type Indexer struct {
	db    *gorm.DB
	cache *Cache
}

// NewIndexer returns an indexer. cache may be nil.
func NewIndexer(db *gorm.DB, cache *Cache) *Indexer {
	return &Indexer{db: db, cache: cache}
}

// Index replaces the index rows and embedding of r inside tx. The caller
// owns the transaction so a recipe and its index are written together.
func (ix *Indexer) Index(tx *gorm.DB, r *models.Recipe) error {
	if err := tx.Where("recipe_id = ?", r.RecipeID).Delete(&models.RecipeSearchTerm{}).Error; err != nil {
		return fmt.Errorf("failed to clear search terms for recipe %d: %w", r.RecipeID, err)
	}

	terms := BuildTerms(r)
	if len(terms) > 0 {
		if err := tx.CreateInBatches(terms, 200).Error; err != nil {
			return fmt.Errorf("failed to write search terms for recipe %d: %w", r.RecipeID, err)
		}
	}

	vec := Embed(terms)
	if err := tx.Model(&models.Recipe{}).Where("recipe_id = ?", r.RecipeID).Update("embedding", vec).Error; err != nil {
		return fmt.Errorf("failed to store embedding for recipe %d: %w", r.RecipeID, err)
	}
	return nil
}

// Reindex rebuilds the index of every recipe, batchSize recipes per
// transaction, and invalidates cached results. It returns the number of
// recipes indexed.
func (ix *Indexer) Reindex(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	log := logging.Ctx(ctx)

	var recipes []models.Recipe
	total := 0
	res := ix.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Preload("Ingredients.Ingredient").
		FindInBatches(&recipes, batchSize, func(batch *gorm.DB, n int) error {
			err := ix.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				for i := range recipes {
					if err := ix.Index(tx, &recipes[i]); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			total += len(recipes)
			log.Info().Int("batch", n).Int("indexed", total).Msg("reindexed batch")
			return nil
		})
	if res.Error != nil {
		return total, fmt.Errorf("reindex failed after %d recipes: %w", total, res.Error)
	}

	ix.cache.Invalidate(ctx)
	return total, nil
}
