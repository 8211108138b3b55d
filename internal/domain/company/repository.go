package company

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (*Company, error)
	UpdateLocation(ctx context.Context, id string, latitude float64, longitude float64) (*Company, error)
}

type RelationRepository interface {
	GetByID(ctx context.Context, id string) (*Relation, error)
	GetActiveByEmployeeID(ctx context.Context, employeeID string) (*Relation, error)
	ListByCompany(ctx context.Context, companyID string) ([]*Relation, error)
	ListByManager(ctx context.Context, managerRelationID string) ([]*Relation, error)
}
