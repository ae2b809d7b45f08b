package models

import (
	"github.com/google/uuid"
)

// Allergen is an entry of the predefined allergen list, e.g. "Peanuts".
type Allergen struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (Allergen) TableName() string {
	return "allergens"
}

// UserAllergy links a user to an allergen they avoid.
type UserAllergy struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_allergen"`
	AllergenID uint      `gorm:"not null;uniqueIndex:idx_user_allergen"`
	Allergen   *Allergen `gorm:"foreignKey:AllergenID;constraint:OnDelete:CASCADE"`
}

func (UserAllergy) TableName() string {
	return "user_allergies"
}
