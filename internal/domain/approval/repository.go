package approval

import "context"

type Repository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	GetByID(ctx context.Context, id string) (*Record, error)
	ListPendingByApprover(ctx context.Context, approverRelationID string) ([]*Record, error)
	Decide(ctx context.Context, record *Record) (*Record, error)
}
