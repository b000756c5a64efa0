package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the tokens minted by the identity provider: HS256 with a
// shared secret, the provider's user id in the user_id claim.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// SignToken issues a token the middleware accepts. The identity provider is
// the normal issuer; this exists for local tooling and tests.
func SignToken(secret, userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
