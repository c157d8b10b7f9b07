package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Platform operator - sees every company
	RoleOwner    Role = "owner"    // Company owner - full access within company
	RoleManager  Role = "manager"  // Can run kiosks and exports
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	CompanyID    *string
	Email        string
	PasswordHash *string
	FullName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user is a platform operator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or above
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleOwner || u.Role == RoleAdmin
}

// CanOperateKiosk reports whether the role may run a shared terminal.
// The lowest-privilege role may not.
func (u *User) CanOperateKiosk() bool {
	return u.Role != RoleEmployee
}
