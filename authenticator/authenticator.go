package authenticator

import (
	"context"
	"errors"
	"strings"

	"github.com/blogem/crm-web/models"
)

// DefaultRoleClaim is the ID token claim read for the CRM role
const DefaultRoleClaim = "role"

// Token represents an authentication token
type Token struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       int64
}

// Claims represents user claims from the ID token
type Claims map[string]interface{}

// Provider interface abstracts OAuth provider operations
type Provider interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	GetClaims(ctx context.Context, token *Token) (Claims, error)
}

// UserFromClaims builds the session user from verified ID token claims.
// The display name falls back from nickname to name, email and sub; a
// missing role claim yields the plain User role.
func UserFromClaims(claims Claims, token *Token, roleClaim string) (*models.User, error) {
	sub := claims.String("sub")
	if sub == "" {
		return nil, errors.New("id token has no sub claim")
	}
	if roleClaim == "" {
		roleClaim = DefaultRoleClaim
	}

	user := &models.User{
		ID:       sub,
		Username: sub,
		Role:     models.Role(claims.Role(roleClaim)),
	}
	for _, key := range []string{"nickname", "preferred_username", "name", "email"} {
		if v := claims.String(key); v != "" {
			user.Username = v
			break
		}
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if token != nil {
		user.AccessToken = token.AccessToken
		user.TokenExpiry = token.Expiry
	}
	return user, nil
}

// String returns a string claim, or "" when missing or not a string
func (c Claims) String(key string) string {
	v, _ := c[key].(string)
	return strings.TrimSpace(v)
}

// Role reads the role claim. A list claim yields Administrator when present,
// otherwise its first entry.
func (c Claims) Role(key string) string {
	switch v := c[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case []interface{}:
		first := ""
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if models.Role(s).IsAdmin() {
				return s
			}
			if first == "" {
				first = s
			}
		}
		return first
	}
	return ""
}
