package models

import (
	"database/sql/driver"
	"fmt"

	json "github.com/goccy/go-json"
)

// FilterCriteria is the raw declarative filter of a predefined catalog, stored
// as a JSON object. It is validated by the filter package before use.
type FilterCriteria map[string]any

// Value implements the driver.Valuer interface
func (c FilterCriteria) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (c *FilterCriteria) Scan(value interface{}) error {
	if value == nil {
		*c = FilterCriteria{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported filter criteria type %T", value)
	}

	m := map[string]any{}
	if err := json.Unmarshal(bytes, &m); err != nil {
		return err
	}
	*c = m
	return nil
}

// PredefinedCatalogType groups predefined catalogs, e.g. "Meal Type".
type PredefinedCatalogType struct {
	ID       uint                `gorm:"primaryKey" json:"id"`
	Name     string              `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Catalogs []PredefinedCatalog `gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PredefinedCatalogType) TableName() string {
	return "predefined_catalog_types"
}

// PredefinedCatalog is a browse section whose members are computed from
// FilterCriteria on demand.
type PredefinedCatalog struct {
	ID             uint                   `gorm:"primaryKey" json:"id"`
	TypeID         uint                   `gorm:"not null;uniqueIndex:idx_predefined_type_name" json:"type"`
	Type           *PredefinedCatalogType `gorm:"foreignKey:TypeID" json:"-"`
	Name           string                 `gorm:"size:255;not null;uniqueIndex:idx_predefined_type_name" json:"name"`
	FilterCriteria FilterCriteria         `gorm:"type:jsonb;not null;default:'{}'" json:"filter_criteria"`
}

func (PredefinedCatalog) TableName() string {
	return "predefined_catalogs"
}
