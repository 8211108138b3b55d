package leave

import "context"

type Service interface {
	// Apply computes the leave hours for the requested span, rejects spans
	// that yield no hours or exceed the remaining balance, and files a
	// pending record.
	Apply(ctx context.Context, req *ApplyRequest) (*RecordResponse, error)
	ListOwn(ctx context.Context) ([]*RecordResponse, error)
	Balances(ctx context.Context) ([]*BalanceResponse, error)
}
