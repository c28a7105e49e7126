package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a session token. RegisteredClaims.ID
// names the server-side session marker.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}
