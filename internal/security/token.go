package security

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// UsernameClaim is the claim carrying the authenticated username.
const UsernameClaim = "username"

// TokenIssuer signs stateless HS256 identity tokens with a process-wide secret.
type TokenIssuer struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
	}
}

func (i *TokenIssuer) Issue(username string) (string, error) {
	claims := jwt.MapClaims{UsernameClaim: username}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, i.ttl)

	_, tokenString, err := i.auth.Encode(claims)
	return tokenString, err
}
