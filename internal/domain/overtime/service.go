package overtime

import "context"

type Service interface {
	Apply(ctx context.Context, req *ApplyRequest) (*RecordResponse, error)
	ListOwn(ctx context.Context) ([]*RecordResponse, error)
	// Cancel withdraws a pending request. Decided requests stay as
	// decided.
	Cancel(ctx context.Context, recordID string) (*RecordResponse, error)
}
