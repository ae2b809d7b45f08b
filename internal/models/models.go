package models

import (
	"database/sql/driver"
	"fmt"

	json "github.com/goccy/go-json"
)

// StringList is a list of strings stored as a JSON array.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported string list type %T", value)
	}

	var out []string
	if err := json.Unmarshal(bytes, &out); err != nil {
		return err
	}
	*l = out
	return nil
}

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&RevokedToken{},
		&RecipeCategory{},
		&Ingredient{},
		&Recipe{},
		&RecipeIngredient{},
		&RecipeSearchTerm{},
		&Catalog{},
		&CatalogRecipe{},
		&Favorite{},
		&RecipeAccess{},
		&Allergen{},
		&UserAllergy{},
		&PredefinedCatalogType{},
		&PredefinedCatalog{},
	}
}
