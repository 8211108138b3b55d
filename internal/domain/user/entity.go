package user

import "time"

// Role is the access level of an employee account.
type Role string

const (
	RoleEmployee    Role = "employee"
	RoleManager     Role = "manager"
	RoleHRAdmin     Role = "hr_admin"
	RoleCEO         Role = "ceo"
	RoleSystemAdmin Role = "system_admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHRAdmin, RoleCEO, RoleSystemAdmin:
		return true
	}
	return false
}

// Employee is an account that can authenticate and clock in. EmployeeID is
// the login identifier and is distinct from the relation id that links the
// employee to a company.
type Employee struct {
	EmployeeID   string
	Name         string
	Email        *string
	Phone        *string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
