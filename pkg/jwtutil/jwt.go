package jwtutil

import (
	"errors"
	"time"

	"sales-service/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	signingKey []byte
	tokenTTL   time.Duration
)

// Claims represents the JWT claims for API authentication
type Claims struct {
	Subject string `json:"sub_name,omitempty"`
	jwt.RegisteredClaims
}

// Initialize configures the signing key and token lifetime
func Initialize(cfg *config.AuthConfig) {
	signingKey = []byte(cfg.SigningKey)
	tokenTTL = cfg.TokenTTL
}

// GenerateToken issues a signed token for the given subject. The service
// exposes no token endpoint: when AUTH_SIGNING_KEY is set, operators mint
// bearer tokens out-of-band with the same key, typically through a small
// CLI or their identity tooling. This helper is that minting path.
func GenerateToken(subject string) (string, error) {
	if len(signingKey) == 0 {
		return "", errors.New("jwtutil: signing key not configured")
	}
	now := time.Now()
	claims := Claims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
