package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity of an API client calling the EMI endpoints.
type Claims struct {
	jwt.RegisteredClaims
	ClientID string   `json:"client_id"`
	Scopes   []string `json:"scopes"`
}

// HasScope reports whether the token grants scope.
func (c Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

const (
	ScopeEligibility = "emi:eligibility"
	ScopeBookLoan    = "emi:book"
	ScopeRead        = "emi:read"
)
