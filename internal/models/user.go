package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:254" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// RevokedToken blacklists a refresh token by its jti until it expires.
type RevokedToken struct {
	JTI       string    `gorm:"size:36;primarykey"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
