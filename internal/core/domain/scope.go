package domain

// Scope is the access predicate derived from a resolved identity. It
// narrows which customers (and, through them, which leads) a request may
// read, write or delete. A scope is produced fresh per request and is
// either unrestricted or pinned to a single owning user.
type Scope struct {
	ownerID string
}

// Unrestricted returns the scope that matches every record.
func Unrestricted() Scope { return Scope{} }

// OwnedBy returns the scope matching records owned by userID. User ids
// are never empty, so OwnedBy never collides with Unrestricted.
func OwnedBy(userID string) Scope { return Scope{ownerID: userID} }

// ScopeForUser derives the scope for a resolved identity. The switch is
// exhaustive over the closed role set; an unknown role falls back to the
// most restrictive view.
func ScopeForUser(u *User) Scope {
	switch u.Role {
	case RoleAdmin:
		return Unrestricted()
	case RoleUser:
		return OwnedBy(u.ID)
	default:
		return OwnedBy(u.ID)
	}
}

// IsUnrestricted reports whether the scope matches every record.
func (s Scope) IsUnrestricted() bool { return s.ownerID == "" }

// OwnerID returns the owning user id for an OwnedBy scope, or the empty
// string when unrestricted.
func (s Scope) OwnerID() string { return s.ownerID }

// Allows reports whether a record owned by ownerID is visible under s.
func (s Scope) Allows(ownerID string) bool {
	return s.ownerID == "" || s.ownerID == ownerID
}
