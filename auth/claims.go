package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleDelimiter separates roles inside the `roles` claim
const RoleDelimiter = ","

// AuthClaims represents structured JWT claims for an authenticated identity
type AuthClaims interface {
	Subject() string
	Username() string
	Roles() []string
	HasRole(role string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims. Roles travel as a
// single delimited string so the wire format stays flat; order is preserved
// across mint and verify.
type JWTClaims struct {
	jwt.RegisteredClaims
	User      string `json:"username,omitempty"`
	RolesJoin string `json:"roles,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Username returns the username claim, falling back to the subject
func (c *JWTClaims) Username() string {
	if c.User != "" {
		return c.User
	}
	return c.Subject()
}

// Roles splits the delimited roles claim back into an ordered sequence
func (c *JWTClaims) Roles() []string {
	return SplitRoles(c.RolesJoin)
}

// HasRole checks if the claim set carries a specific role
func (c *JWTClaims) HasRole(role string) bool {
	for _, r := range c.Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// JoinRoles encodes an ordered role sequence as a flat delimited string
func JoinRoles(roles []string) string {
	return strings.Join(roles, RoleDelimiter)
}

// SplitRoles decodes a delimited roles string, preserving order.
// An empty string yields an empty sequence, not [""].
func SplitRoles(joined string) []string {
	if joined == "" {
		return []string{}
	}

	parts := strings.Split(joined, RoleDelimiter)
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, p)
		}
	}
	return roles
}
