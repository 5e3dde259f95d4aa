package authenticator

import (
	"context"
)

// Token represents an OAuth token returned by the identity provider
type Token struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       int64
}

// Claims represents user claims from the ID token
type Claims map[string]interface{}

// Email returns the email claim, or "" when the provider did not send one
func (c Claims) Email() string {
	email, _ := c["email"].(string)
	return email
}

// EmailVerified reports whether the provider vouches for the email. Some
// providers send the claim as the string "true".
func (c Claims) EmailVerified() bool {
	switch v := c["email_verified"].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// DisplayName picks the most readable name the provider sent
func (c Claims) DisplayName() string {
	for _, key := range []string{"name", "nickname", "email", "sub"} {
		if v, ok := c[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Provider interface abstracts OAuth provider operations
type Provider interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	GetClaims(ctx context.Context, token *Token) (Claims, error)
}
