package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/recipe-catalog/backend/internal/models"
	"github.com/pageza/recipe-catalog/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Default token lifetimes.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	db         *gorm.DB
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(db *gorm.DB, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &AuthService{
		db:         db,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// Signup creates an account and returns it with a fresh token pair.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*models.User, *types.TokenPair, error) {
	username = strings.TrimSpace(username)

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, nil, storageErr(err, "check username")
	}
	if count > 0 {
		return nil, nil, fmt.Errorf("username %q: %w", username, ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hashedPassword),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, nil, storageErr(err, "create user")
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login checks the credentials and returns a fresh token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, *types.TokenPair, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return nil, nil, storageErr(err, "load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	pair, err := s.issuePair(&user)
	if err != nil {
		return nil, nil, err
	}
	return &user, pair, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken, types.RefreshToken)
	if err != nil {
		return "", err
	}
	revoked, err := s.isRevoked(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", fmt.Errorf("refresh token revoked: %w", ErrUnauthorized)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", claims.UserID).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("user no longer exists: %w", ErrUnauthorized)
		}
		return "", storageErr(err, "load user")
	}
	return s.sign(&user, types.AccessToken, s.accessTTL)
}

// Logout revokes a refresh token. Expired revocations are purged on the way.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.parse(refreshToken, types.RefreshToken)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		revoked := models.RevokedToken{
			JTI:       claims.ID,
			UserID:    claims.UserID,
			ExpiresAt: claims.ExpiresAt.Time,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&revoked).Error; err != nil {
			return storageErr(err, "revoke token")
		}
		if err := tx.Where("expires_at < ?", s.now()).Delete(&models.RevokedToken{}).Error; err != nil {
			return storageErr(err, "purge revoked tokens")
		}
		return nil
	})
}

// ValidateToken validates an access token and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	return s.parse(tokenString, types.AccessToken)
}

// GetUserByID returns a user
func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).Take(&user).Error; err != nil {
		return nil, storageErr(err, "user")
	}
	return &user, nil
}

func (s *AuthService) issuePair(user *models.User) (*types.TokenPair, error) {
	access, err := s.sign(user, types.AccessToken, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, types.RefreshToken, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &types.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) sign(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *AuthService) parse(tokenString, wantType string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", errors.Join(ErrUnauthorized, err))
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("expected %s token: %w", wantType, ErrUnauthorized)
	}
	if claims.UserID == uuid.Nil || claims.ID == "" {
		return nil, fmt.Errorf("incomplete token claims: %w", ErrUnauthorized)
	}
	return claims, nil
}

func (s *AuthService) isRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
		return false, storageErr(err, "check revoked token")
	}
	return count > 0, nil
}
