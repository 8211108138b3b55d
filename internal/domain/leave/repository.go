package leave

import "context"

type Repository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	GetByID(ctx context.Context, id string) (*Record, error)
	ListByRelation(ctx context.Context, relationID string) ([]*Record, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Record, error)
}

type BalanceRepository interface {
	GetByEmployeeTypeYear(ctx context.Context, employeeID string, leaveType Type, year int) (*Balance, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]*Balance, error)
	AddUsedHours(ctx context.Context, id string, hours float64) error
}
