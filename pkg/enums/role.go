package enums

import "fmt"

// Role identifies the authenticated account type attached to a session.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDispatcher Role = "dispatcher"
	RoleFieldAgent Role = "field_agent"
)

var validRoles = []Role{
	RoleAdmin,
	RoleDispatcher,
	RoleFieldAgent,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// CanAssign reports whether the role may assign or reassign bookings.
func (r Role) CanAssign() bool {
	return r == RoleAdmin || r == RoleDispatcher
}

// CanSelfAssign reports whether the role may claim a booking for itself.
// Only dispatchers are bookable assignees besides field agents.
func (r Role) CanSelfAssign() bool {
	return r == RoleDispatcher
}

// CanDelete reports whether the role may delete bookings.
func (r Role) CanDelete() bool {
	return r == RoleAdmin || r == RoleDispatcher
}

// CanChangeRegion reports whether the role may move a booking between regions.
func (r Role) CanChangeRegion() bool {
	return r == RoleAdmin
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
