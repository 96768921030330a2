package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims represents the typed JWT presented by clients. Tokens are
// minted by the external identity provider; shopper tokens carry a name claim
// while staff tokens rely on the subject plus their group memberships.
type AccessTokenClaims struct {
	Name   string   `json:"name,omitempty"`
	Email  string   `json:"email,omitempty"`
	Groups []string `json:"groups,omitempty"`
	jwt.RegisteredClaims
}

// HasGroup reports whether the token carries the given group membership.
func (c *AccessTokenClaims) HasGroup(group string) bool {
	for _, g := range c.Groups {
		if g == group {
			return true
		}
	}
	return false
}
