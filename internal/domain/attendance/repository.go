package attendance

import "context"

type Repository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	// GetByRelationAndDate returns the row for the relation on the given
	// date, or ErrRecordNotFound when none exists.
	GetByRelationAndDate(ctx context.Context, relationID string, date string) (*Record, error)
	// PatchCheckout closes an open row in place.
	PatchCheckout(ctx context.Context, record *Record) (*Record, error)
	GetByID(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, req *ListRequest) ([]*Record, int, error)
	ListByCompany(ctx context.Context, companyID string, req *ListRequest) ([]*Record, int, error)
	UpdateTimes(ctx context.Context, id string, record *Record) (*Record, error)
	// ListOpenBefore returns rows still open (checkout equals checkin)
	// whose date is strictly before the given date.
	ListOpenBefore(ctx context.Context, date string) ([]*Record, error)
}
