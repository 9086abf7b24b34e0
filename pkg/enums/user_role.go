package enums

import "fmt"

// UserRole describes the allowed values for the `role` column in users.
type UserRole string

const (
	UserRoleStudent    UserRole = "Student"
	UserRoleWarden     UserRole = "Warden"
	UserRoleSuperAdmin UserRole = "SuperAdmin"
)

var validUserRoles = []UserRole{
	UserRoleStudent,
	UserRoleWarden,
	UserRoleSuperAdmin,
}

// IsValid reports whether the value matches the canonical user role enum.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserRole converts the raw string to UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
