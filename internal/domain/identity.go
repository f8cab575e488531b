package domain

// RoleAdmin is the role granting access to the admin views.
const RoleAdmin = "ROLE_ADMIN"

// Identity is the authenticated user derived from a credential's claims.
// It is never stored independently; the session store recomputes it whenever
// the credential changes.
type Identity struct {
	Username string
	Roles    []string
}

// HasRole reports whether the identity carries the given role.
func (i *Identity) HasRole(role string) bool {
	if i == nil {
		return false
	}
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}
