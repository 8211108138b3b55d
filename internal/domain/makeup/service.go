package makeup

import "context"

type Service interface {
	// Apply files a makeup request. The date must be in the past, no more
	// than 7 days back, and the caller must have remaining quota.
	Apply(ctx context.Context, req *ApplyRequest) (*RequestResponse, error)
	ListOwn(ctx context.Context) ([]*RequestResponse, error)
	Quota(ctx context.Context) (*QuotaResponse, error)
}
