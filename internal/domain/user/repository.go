package user

import "context"

// EmployeeRepository defines data access for employee accounts.
type EmployeeRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	UpdatePassword(ctx context.Context, employeeID string, passwordHash string) error
}
