package search

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/pageza/recipe-catalog/backend/internal/models"
	"gorm.io/gorm"
)

// MinRelevance is the lowest score a recipe can have and still be returned.
const MinRelevance = 0.1

// Hit is a ranked search result.
type Hit struct {
	RecipeID int64   `json:"recipe_id"`
	Score    float64 `json:"score"`
}

type termMatch struct {
	RecipeID int64
	Lexeme   string
	ACount   int `gorm:"column:a_count"`
	BCount   int `gorm:"column:b_count"`
}

// Rank scores every recipe that matches at least one of lexemes.
//
// For each query lexeme a recipe earns 1 - Π(1 - w) over its matching
// occurrences, so a name match counts fully and each further keyword or
// ingredient match adds less. The score is the mean over the query lexemes.
// Recipes scoring below MinRelevance and excludeID are dropped; the rest are
// ordered by score, best first, then by recipe id, and cut to limit.
func Rank(ctx context.Context, db *gorm.DB, lexemes []string, excludeID *int64, limit int) ([]Hit, error) {
	if len(lexemes) == 0 || limit <= 0 {
		return []Hit{}, nil
	}

	var matches []termMatch
	err := db.WithContext(ctx).
		Model(&models.RecipeSearchTerm{}).
		Select(`recipe_id, lexeme,
			SUM(CASE WHEN weight = ? THEN 1 ELSE 0 END) AS a_count,
			SUM(CASE WHEN weight = ? THEN 1 ELSE 0 END) AS b_count`, WeightA, WeightB).
		Where("lexeme IN ?", lexemes).
		Group("recipe_id, lexeme").
		Scan(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to match search terms: %w", err)
	}

	sums := make(map[int64]float64)
	for _, m := range matches {
		sums[m.RecipeID] += termScore(m.ACount, m.BCount)
	}

	hits := make([]Hit, 0, len(sums))
	n := float64(len(lexemes))
	for id, sum := range sums {
		if excludeID != nil && id == *excludeID {
			continue
		}
		score := sum / n
		if score < MinRelevance {
			continue
		}
		hits = append(hits, Hit{RecipeID: id, Score: score})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].RecipeID < hits[j].RecipeID
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func termScore(aCount, bCount int) float64 {
	miss := math.Pow(1-weightValue[WeightA], float64(aCount)) *
		math.Pow(1-weightValue[WeightB], float64(bCount))
	return 1 - miss
}
