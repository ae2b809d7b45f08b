package service

import (
	"context"
	"fmt"

	"github.com/pageza/recipe-catalog/backend/internal/filter"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/metrics"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"gorm.io/gorm"
)

// Page bounds a list query. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	return db
}

// PredefinedService exposes predefined catalogs, whose recipes are computed
// from their stored filter criteria
type PredefinedService struct {
	db *gorm.DB
}

// NewPredefinedService creates a new PredefinedService instance
func NewPredefinedService(db *gorm.DB) *PredefinedService {
	return &PredefinedService{db: db}
}

// ListTypes returns every predefined catalog type.
func (s *PredefinedService) ListTypes(ctx context.Context) ([]models.PredefinedCatalogType, error) {
	var types []models.PredefinedCatalogType
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, storageErr(err, "list predefined types")
	}
	return types, nil
}

// List returns every predefined catalog with its type.
func (s *PredefinedService) List(ctx context.Context) ([]models.PredefinedCatalog, error) {
	var catalogs []models.PredefinedCatalog
	if err := s.db.WithContext(ctx).Preload("Type").Order("type_id ASC, id ASC").Find(&catalogs).Error; err != nil {
		return nil, storageErr(err, "list predefined catalogs")
	}
	return catalogs, nil
}

// Get returns a predefined catalog with its type.
func (s *PredefinedService) Get(ctx context.Context, id uint) (*models.PredefinedCatalog, error) {
	var catalog models.PredefinedCatalog
	if err := s.db.WithContext(ctx).Preload("Type").Where("id = ?", id).Take(&catalog).Error; err != nil {
		return nil, storageErr(err, "predefined catalog")
	}
	return &catalog, nil
}

// Spec validates the stored criteria of a predefined catalog. Legacy key
// spellings are accepted and logged; anything else outside the vocabulary is
// a data-integrity failure reported as ErrInvalidFilter.
func (s *PredefinedService) Spec(ctx context.Context, pc *models.PredefinedCatalog) (filter.Spec, error) {
	log := logging.Ctx(ctx)

	raw, migrated := filter.Migrate(pc.FilterCriteria)
	if migrated {
		log.Warn().Uint("predefined_catalog_id", pc.ID).Msg("predefined catalog uses legacy filter keys; run repair_filters")
	}

	spec, err := filter.Parse(raw)
	if err != nil {
		metrics.InvalidFilterCriteria.WithLabelValues(pc.Name).Inc()
		log.Error().Err(err).
			Uint("predefined_catalog_id", pc.ID).
			Interface("filter_criteria", map[string]any(pc.FilterCriteria)).
			Msg("predefined catalog has invalid filter criteria")
		return nil, fmt.Errorf("predefined catalog %d: %w", pc.ID, err)
	}
	return spec, nil
}

// Resolve returns the recipes matching the predefined catalog's criteria,
// ordered by recipe id. Every criterion must hold; no criteria match every
// recipe.
func (s *PredefinedService) Resolve(ctx context.Context, id uint, page Page) ([]models.Recipe, error) {
	pc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	spec, err := s.Spec(ctx, pc)
	if err != nil {
		return nil, err
	}
	return ListMatching(ctx, s.db, spec, page)
}

// ListMatching returns the recipes matching spec ordered by recipe id.
func ListMatching(ctx context.Context, db *gorm.DB, spec filter.Spec, page Page) ([]models.Recipe, error) {
	var recipes []models.Recipe
	q := spec.Apply(db.WithContext(ctx).Model(&models.Recipe{}))
	if err := page.apply(q).Order("recipes.recipe_id ASC").Find(&recipes).Error; err != nil {
		return nil, storageErr(err, "filter recipes")
	}
	return recipes, nil
}

// RepairFilters rewrites legacy filter keys of every stored predefined
// catalog and returns how many were changed.
func (s *PredefinedService) RepairFilters(ctx context.Context) (int, error) {
	var catalogs []models.PredefinedCatalog
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&catalogs).Error; err != nil {
		return 0, storageErr(err, "list predefined catalogs")
	}

	patched := 0
	for _, pc := range catalogs {
		fixed, changed := filter.Migrate(pc.FilterCriteria)
		if !changed {
			continue
		}
		if err := s.db.WithContext(ctx).Model(&models.PredefinedCatalog{}).
			Where("id = ?", pc.ID).
			Update("filter_criteria", models.FilterCriteria(fixed)).Error; err != nil {
			return patched, storageErr(err, "update filter criteria")
		}
		logging.Ctx(ctx).Info().Uint("predefined_catalog_id", pc.ID).Str("name", pc.Name).Msg("patched legacy filter keys")
		patched++
	}
	return patched, nil
}
