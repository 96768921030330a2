package enums

import "fmt"

// ActorRole is the identity-provider group a caller belongs to.
type ActorRole string

const (
	ActorRoleShopper  ActorRole = "user"
	ActorRoleAdmin    ActorRole = "admin"
	ActorRoleEmployee ActorRole = "employee"
)

var validActorRoles = []ActorRole{
	ActorRoleShopper,
	ActorRoleAdmin,
	ActorRoleEmployee,
}

// String implements fmt.Stringer.
func (a ActorRole) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ActorRole.
func (a ActorRole) IsValid() bool {
	for _, candidate := range validActorRoles {
		if candidate == a {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role grants access to staff-only operations.
func (a ActorRole) IsStaff() bool {
	return a == ActorRoleAdmin || a == ActorRoleEmployee
}

// ParseActorRole converts raw input into an ActorRole.
func ParseActorRole(value string) (ActorRole, error) {
	for _, candidate := range validActorRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid actor role %q", value)
}
