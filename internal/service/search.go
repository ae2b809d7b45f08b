package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/metrics"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/search"
	"gorm.io/gorm"
)

// Search limits.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 100
)

// SearchService answers ranked full-text recipe searches
type SearchService struct {
	db    *gorm.DB
	cache *search.Cache
}

// NewSearchService creates a new SearchService instance. cache may be nil.
func NewSearchService(db *gorm.DB, cache *search.Cache) *SearchService {
	return &SearchService{db: db, cache: cache}
}

// Search returns up to limit recipes relevant to query, best match first.
// A query without any searchable word returns an empty result without
// touching the store.
func (s *SearchService) Search(ctx context.Context, query string, excludeID *int64, limit int) ([]models.Recipe, error) {
	lexemes := search.QueryLexemes(query)
	if len(lexemes) == 0 {
		return []models.Recipe{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	start := time.Now()
	hits, cached := s.cache.Get(ctx, lexemes, excludeID, limit)
	if !cached {
		var err error
		hits, err = search.Rank(ctx, s.db, lexemes, excludeID, limit)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		s.cache.Set(ctx, lexemes, excludeID, limit, hits)
	}

	ids := make([]int64, len(hits))
	for i, h := range hits {
		ids[i] = h.RecipeID
	}
	recipes, err := recipesByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	metrics.RecordSearch(time.Since(start), len(recipes), cached)
	logging.Ctx(ctx).Debug().
		Strs("lexemes", lexemes).
		Int("results", len(recipes)).
		Bool("cached", cached).
		Msg("search")
	return recipes, nil
}
