package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var (
	TokenAuth *jwtauth.JWTAuth

	tokenExpiry time.Duration
)

// InitJWT sets up the shared verifier. Tokens are always checked through
// TokenAuth so the HS256 signature is validated on every read; a bare decode
// of the payload is never trusted.
func InitJWT(secret []byte, expiry time.Duration) {
	TokenAuth = jwtauth.New("HS256", secret, nil)
	tokenExpiry = expiry
}

// GenerateToken issues a signed session token carrying the user identity.
// The expiry is fixed at issuance (60 days by default configuration).
func GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenExpiry).Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}
