package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/suteetoe/catalogadmin/pkg/config"
)

var (
	signingKey      = []byte("defaultsecretkey")
	expirationHours = 24
)

// Initialize configures the signing key and token lifetime from config.
func Initialize(cfg *config.JWTConfig) {
	signingKey = []byte(cfg.SigningKey)
	if cfg.ExpirationHours > 0 {
		expirationHours = cfg.ExpirationHours
	}
}

// OperatorClaims represents the JWT claims for a catalog operator session
type OperatorClaims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed token for a catalog operator.
func GenerateToken(email, role string) (string, error) {
	now := time.Now()
	claims := OperatorClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expirationHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*OperatorClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
