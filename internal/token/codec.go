package token

import (
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims holds decoded bearer token claims. Decoding performs no signature
// verification; the server is the actual authority, this is purely a
// claims-extraction convenience.
type Claims struct {
	Subject     string
	Username    string
	Roles       []string
	Authorities []string
	Scope       string
	ExpiresAt   int64
}

// Decode extracts claims from the token's payload segment. It returns nil on
// any malformed input (wrong segment count, invalid base64, invalid JSON)
// and never panics.
func Decode(tokenStr string) *Claims {
	raw := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, raw); err != nil {
		return nil
	}

	claims := &Claims{
		Subject:     stringClaim(raw, "sub"),
		Username:    stringClaim(raw, "username"),
		Roles:       stringSliceClaim(raw, "roles"),
		Authorities: stringSliceClaim(raw, "authorities"),
		Scope:       stringClaim(raw, "scope"),
	}
	if exp, err := raw.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Unix()
	}
	return claims
}

// ExtractRoles applies the role precedence rule: roles array, then
// authorities array, then scope split on whitespace, then empty.
func ExtractRoles(claims *Claims) []string {
	if claims == nil {
		return []string{}
	}
	if len(claims.Roles) > 0 {
		return claims.Roles
	}
	if len(claims.Authorities) > 0 {
		return claims.Authorities
	}
	if claims.Scope != "" {
		return strings.Fields(claims.Scope)
	}
	return []string{}
}

// Expired reports whether the claims carry an expiry at or before now. Claims
// without an expiry never expire.
func (c *Claims) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt == 0 {
		return false
	}
	return c.ExpiresAt <= now.Unix()
}

func stringClaim(raw jwt.MapClaims, key string) string {
	if val, ok := raw[key].(string); ok {
		return val
	}
	return ""
}

func stringSliceClaim(raw jwt.MapClaims, key string) []string {
	vals, ok := raw[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
