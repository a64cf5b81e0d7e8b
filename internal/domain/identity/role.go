package identity

import (
	"fmt"

	"github.com/shopcart/backend/internal/domain/shared"
)

// Role is a closed set of permissions groups
type Role uint8

const (
	RoleUser Role = iota + 1
	RoleStoreAdmin
	RoleTrackAdmin
	RoleAdmin
)

// AllRoles lists every role, in declaration order
func AllRoles() []Role {
	return []Role{RoleUser, RoleStoreAdmin, RoleTrackAdmin, RoleAdmin}
}

// String returns the string representation of Role
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleStoreAdmin:
		return "StoreAdmin"
	case RoleTrackAdmin:
		return "TrackAdmin"
	case RoleAdmin:
		return "Admin"
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// IsValid returns true for declared roles
func (r Role) IsValid() bool {
	return r >= RoleUser && r <= RoleAdmin
}

// ParseRole converts the stored name back into a Role
func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles() {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, shared.ErrInvalidInput.WithMessage(fmt.Sprintf("unknown role %q", s))
}

// RoleNames renders roles to their names
func RoleNames(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.String())
	}
	return out
}

// ParseRoles parses names, skipping unknown ones
func ParseRoles(names []string) []Role {
	out := make([]Role, 0, len(names))
	for _, n := range names {
		if r, err := ParseRole(n); err == nil {
			out = append(out, r)
		}
	}
	return out
}
