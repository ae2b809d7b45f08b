package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the token_type claim.
const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

// TokenClaims represents the claims in a JWT token. The embedded
// RegisteredClaims carry jti and exp.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	TokenType string    `json:"token_type"`
}

// TokenPair is returned by signup and login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
