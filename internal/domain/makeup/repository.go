package makeup

import "context"

type Repository interface {
	Create(ctx context.Context, request *Request) (*Request, error)
	GetByID(ctx context.Context, id string) (*Request, error)
	ListByRelation(ctx context.Context, relationID string) ([]*Request, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Request, error)
}

type QuotaRepository interface {
	GetByEmployeeYear(ctx context.Context, employeeID string, year int) (*Quota, error)
	IncrementUsed(ctx context.Context, id string) error
	// ResetAll seeds every employee's quota for the new year.
	ResetAll(ctx context.Context, year int, total int) error
}
