package overtime

import "context"

type Repository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	GetByID(ctx context.Context, id string) (*Record, error)
	ListByRelation(ctx context.Context, relationID string) ([]*Record, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Record, error)
}
