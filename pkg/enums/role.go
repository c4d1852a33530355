package enums

import "fmt"

// Role is a named staff role derived from group membership. Users holding
// neither staff role are plain customers.
type Role string

const (
	RoleManager      Role = "manager"
	RoleDeliveryCrew Role = "delivery_crew"
)

var validRoles = []Role{
	RoleManager,
	RoleDeliveryCrew,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known staff Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
