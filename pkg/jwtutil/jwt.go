package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/suteetoe/platformadmin/pkg/config"
)

// RoleSuperAdmin is the role claim required for every platform-admin API call.
const RoleSuperAdmin = "superadmin"

var (
	secret          = []byte("platformadminsecretkey")
	expirationHours = 24
)

// UserClaims represents the JWT claims for platform-admin authentication
type UserClaims struct {
	Email    string  `json:"email"`
	UserID   string  `json:"user_id"`
	Role     string  `json:"role,omitempty"`      // Platform role name, e.g. "superadmin"
	TenantID *string `json:"tenant_id,omitempty"` // Nil for platform-level users
	jwt.RegisteredClaims
}

// Initialize configures the signing key and expiration from config
func Initialize(cfg *config.JWTConfig) {
	if cfg.SigningKey != "" {
		secret = []byte(cfg.SigningKey)
	}
	if cfg.ExpirationHours > 0 {
		expirationHours = cfg.ExpirationHours
	}
}

// GenerateToken creates a JWT token with user and role information
func GenerateToken(email, userID, role string, tenantID *string) (string, error) {
	claims := UserClaims{
		Email:    email,
		UserID:   userID,
		Role:     role,
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * time.Duration(expirationHours))),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
