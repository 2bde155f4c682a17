package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds token issuance configuration. The secret is injected here
// at startup; it is never read from the environment anywhere else.
type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Claims represents the token claims attached to every session token.
// The user id travels in the registered Subject claim as an opaque string.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens.
type Issuer struct {
	cfg JWTConfig
}

// NewIssuer creates a token issuer.
func NewIssuer(cfg JWTConfig) *Issuer {
	return &Issuer{cfg: cfg}
}

// Issue generates a signed HS256 token for the given user.
func (i *Issuer) Issue(userID, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(i.cfg.Secret))
}

// Verify parses a token string and returns its claims. Tokens signed with
// anything other than HMAC are rejected.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(i.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
