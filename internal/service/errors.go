package service

import (
	"errors"
	"fmt"

	"github.com/pageza/recipe-catalog/backend/internal/filter"
	"gorm.io/gorm"
)

var (
	// ErrNotFound reports a missing recipe, catalog, user or predefined catalog.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness violation such as a duplicate catalog name.
	ErrConflict = errors.New("already exists")
	// ErrUnauthorized reports bad credentials or an unusable token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStorage wraps every store failure other than a missing row.
	ErrStorage = errors.New("storage error")
	// ErrInvalidFilter reports a stored filter spec that failed validation.
	ErrInvalidFilter = filter.ErrInvalidFilter
)

// storageErr classifies a gorm error: record-not-found becomes ErrNotFound
// with what as context, everything else is wrapped in ErrStorage.
func storageErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", what, ErrConflict)
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, what, err)
}
