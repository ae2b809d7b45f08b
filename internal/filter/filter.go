// Package filter implements the declarative recipe filters stored on
// predefined catalogs and accepted by the recipe list endpoint.
//
// A stored spec is a JSON object such as {"total_mins_lt": 30}. Every key must
// belong to the supported vocabulary; Parse turns the object into a Spec of
// typed criteria that can be applied to a gorm query.
package filter

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ErrInvalidFilter reports a filter spec that uses an unsupported key or a
// value of the wrong type.
var ErrInvalidFilter = errors.New("invalid filter criteria")

// Key is a supported filter key.
type Key string

const (
	TotalMinsLT    Key = "total_mins_lt"
	TotalMinsLTE   Key = "total_mins_lte"
	RecipeCategory Key = "recipe_category"
)

// Keys lists the supported vocabulary.
var Keys = []Key{TotalMinsLT, TotalMinsLTE, RecipeCategory}

// legacyKeys maps spellings found in older stored specs to the current key.
var legacyKeys = map[string]Key{
	"total_mins__lt":  TotalMinsLT,
	"total_mins__lte": TotalMinsLTE,
}

// Criterion is one typed filter condition.
type Criterion interface {
	Key() Key
	Apply(db *gorm.DB) *gorm.DB
	value() any
}

// TotalMinsBelow keeps recipes whose total time is strictly less than Minutes.
type TotalMinsBelow struct{ Minutes float64 }

func (TotalMinsBelow) Key() Key { return TotalMinsLT }

func (c TotalMinsBelow) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("recipes.total_mins < ?", c.Minutes)
}

func (c TotalMinsBelow) value() any { return c.Minutes }

// TotalMinsAtMost keeps recipes whose total time is at most Minutes.
type TotalMinsAtMost struct{ Minutes float64 }

func (TotalMinsAtMost) Key() Key { return TotalMinsLTE }

func (c TotalMinsAtMost) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("recipes.total_mins <= ?", c.Minutes)
}

func (c TotalMinsAtMost) value() any { return c.Minutes }

// CategoryIs keeps recipes whose category name equals Name, ignoring case.
type CategoryIs struct{ Name string }

func (CategoryIs) Key() Key { return RecipeCategory }

func (c CategoryIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"recipes.category_id IN (?)",
		db.Session(&gorm.Session{NewDB: true}).
			Table("recipe_categories").
			Select("id").
			Where("LOWER(name) = ?", strings.ToLower(c.Name)),
	)
}

func (c CategoryIs) value() any { return c.Name }

// Spec is a conjunction of criteria, ordered by key.
type Spec []Criterion

// Apply adds every criterion to the query.
func (s Spec) Apply(db *gorm.DB) *gorm.DB {
	for _, c := range s {
		db = c.Apply(db)
	}
	return db
}

// Map converts the spec back to its stored form.
func (s Spec) Map() map[string]any {
	m := make(map[string]any, len(s))
	for _, c := range s {
		m[string(c.Key())] = c.value()
	}
	return m
}

// Migrate rewrites legacy key spellings in raw to their current form. It
// returns the rewritten map and whether anything changed. raw is not modified.
// When both spellings are present the current key wins.
func Migrate(raw map[string]any) (map[string]any, bool) {
	out := make(map[string]any, len(raw))
	changed := false
	for k, v := range raw {
		if _, legacy := legacyKeys[k]; legacy {
			changed = true
			continue
		}
		out[k] = v
	}
	for old, cur := range legacyKeys {
		v, ok := raw[old]
		if !ok {
			continue
		}
		if _, exists := out[string(cur)]; !exists {
			out[string(cur)] = v
		}
	}
	return out, changed
}

// Parse validates raw and builds a Spec. Unknown keys and mistyped values are
// reported with ErrInvalidFilter. Legacy keys are not accepted here; callers
// reading stored specs run Migrate first.
func Parse(raw map[string]any) (Spec, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	spec := make(Spec, 0, len(raw))
	for _, k := range keys {
		c, err := parseCriterion(Key(k), raw[k])
		if err != nil {
			return nil, err
		}
		spec = append(spec, c)
	}
	return spec, nil
}

// ParseStrings builds a Spec from string values, as found in a query string.
// Empty values are skipped.
func ParseStrings(values map[string]string) (Spec, error) {
	raw := make(map[string]any, len(values))
	for k, v := range values {
		if v == "" {
			continue
		}
		raw[k] = v
	}
	return Parse(raw)
}

func parseCriterion(key Key, v any) (Criterion, error) {
	switch key {
	case TotalMinsLT:
		n, err := number(key, v)
		if err != nil {
			return nil, err
		}
		return TotalMinsBelow{Minutes: n}, nil
	case TotalMinsLTE:
		n, err := number(key, v)
		if err != nil {
			return nil, err
		}
		return TotalMinsAtMost{Minutes: n}, nil
	case RecipeCategory:
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidFilter, key)
		}
		return CategoryIs{Name: s}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported key %q", ErrInvalidFilter, string(key))
	}
}

func number(key Key, v any) (float64, error) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidFilter, key)
		}
		n = f
	default:
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidFilter, key)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %s must be finite", ErrInvalidFilter, key)
	}
	return n, nil
}
