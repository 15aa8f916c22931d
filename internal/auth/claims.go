package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims is the identity attached to every authenticated request. The
// engine is owner-scoped: every surface operates on the caller's own vessels
// and entries.
type UserClaims interface {
	OwnerID() string
	Source() string
}

// APIKeyClaims is the identity derived from an owner API key.
type APIKeyClaims struct {
	OwnerUUID string
}

func (c *APIKeyClaims) OwnerID() string { return c.OwnerUUID }
func (c *APIKeyClaims) Source() string  { return "API_KEY" }

// LinkClaims is the identity carried by a short-lived dashboard-link token.
type LinkClaims struct {
	OwnerUUID string
}

func (c *LinkClaims) OwnerID() string { return c.OwnerUUID }
func (c *LinkClaims) Source() string  { return "LINK_TOKEN" }

type linkTokenClaims struct {
	OwnerID string `json:"owner_id"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	secret := os.Getenv("LINK_TOKEN_SECRET")
	if secret == "" {
		secret = "dev-only-link-secret"
	}
	return []byte(secret)
}

// SignLinkToken issues a short-lived token for opening the logbook from a
// companion app without re-entering the API key.
func SignLinkToken(ownerID string, ttl time.Duration) (string, error) {
	claims := linkTokenClaims{
		OwnerID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "sealog",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseLinkToken validates a dashboard-link token and returns its claims.
func ParseLinkToken(tokenString string) (*LinkClaims, error) {
	var claims linkTokenClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.OwnerID == "" {
		return nil, fmt.Errorf("invalid link token")
	}

	return &LinkClaims{OwnerUUID: claims.OwnerID}, nil
}
