package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/user"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) user.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `employee_id, name, email, phone, password_hash, role, created_at, updated_at`

func scanEmployee(row pgx.Row) (user.Employee, error) {
	var employee user.Employee
	err := row.Scan(
		&employee.EmployeeID, &employee.Name, &employee.Email, &employee.Phone,
		&employee.PasswordHash, &employee.Role, &employee.CreatedAt, &employee.UpdatedAt,
	)
	return employee, err
}

// GetByEmployeeID implements user.EmployeeRepository.
func (e *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (user.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE employee_id = $1`, employeeColumns)

	employee, err := scanEmployee(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Employee{}, user.ErrEmployeeNotFound
		}
		return user.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

// GetByEmail implements user.EmployeeRepository.
func (e *employeeRepository) GetByEmail(ctx context.Context, email string) (user.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE email = $1`, employeeColumns)

	employee, err := scanEmployee(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Employee{}, user.ErrEmployeeNotFound
		}
		return user.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return employee, nil
}

// UpdatePassword implements user.EmployeeRepository.
func (e *employeeRepository) UpdatePassword(ctx context.Context, employeeID string, passwordHash string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx,
		`UPDATE employees SET password_hash = $1, updated_at = NOW() WHERE employee_id = $2`,
		passwordHash, employeeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrEmployeeNotFound
	}
	return nil
}
