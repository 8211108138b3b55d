package approval

import "context"

type Service interface {
	// Pending lists undecided requests assigned to the caller.
	Pending(ctx context.Context) ([]*PendingItem, error)
	Approve(ctx context.Context, approvalID string, req *DecisionRequest) (*DecisionResponse, error)
	Reject(ctx context.Context, approvalID string, req *DecisionRequest) (*DecisionResponse, error)
	// Batch applies one action to a set of approvals, collecting per-item
	// failures instead of aborting.
	Batch(ctx context.Context, req *BatchRequest) (*BatchResponse, error)
}
