package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ovaphlow/pitchfork/service-idea-studio/internal/user/entity"
)

// Claims is the signed content of the session cookie.
type Claims struct {
	jwt.RegisteredClaims
	Username            string `json:"name"`
	IsTemporaryPassword bool   `json:"itp"`
}

func (c *Claims) Identity() entity.Identity {
	return entity.Identity{ID: c.Subject, Username: c.Username, IsTemporaryPassword: c.IsTemporaryPassword}
}

type contextKey string

const claimsKey contextKey = "session_claims"

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// FromContext returns the session claims attached by the session middleware.
func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok && c != nil
}
