// Package auth implements token issuance/verification and password hashing
// for the LiftLog server.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dpavlenko/liftlog/internal/common"
)

// Claims is the decoded payload of a verified bearer token: the standard
// registered claims plus the identity identifier and email.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
}

const bearerPrefix = "Bearer "

// GenerateToken produces a signed HS256 token embedding the identity
// identifier, email, issued-at, and an expiry of validityDuration from now.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and validity window of tokenString and
// returns its claims. Malformed, forged and expired tokens all return an
// error; callers deciding between "anonymous" and "authenticated" should
// use ResolveBearer instead.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrorInvalidToken
	}

	return claims, nil
}

// ResolveBearer turns a raw Authorization header value into verified claims,
// or nil for anything else: missing header, missing "Bearer " prefix, or a
// token that fails verification. nil means anonymous, never an error.
func ResolveBearer(headerValue string, secretKey []byte) *Claims {
	if !strings.HasPrefix(headerValue, bearerPrefix) {
		return nil
	}

	claims, err := ParseToken(strings.TrimSpace(strings.TrimPrefix(headerValue, bearerPrefix)), secretKey)
	if err != nil {
		return nil
	}

	return claims
}
