package attendance

import "context"

type Service interface {
	// StartScanSession opens a fresh scan session for the caller,
	// discarding any session they already hold.
	StartScanSession(ctx context.Context) (*StartSessionResponse, error)
	// Scan runs the clock reconciler for one decoded QR payload. Only the
	// first decode of a session reaches the reconciler; concurrent decodes
	// of the same session are rejected without side effects.
	Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error)
	ScanSessionState(ctx context.Context, sessionID string) (*StartSessionResponse, error)
	ListOwn(ctx context.Context, req *ListRequest) ([]*RecordResponse, int, error)
	ListCompany(ctx context.Context, req *ListRequest) ([]*RecordResponse, int, error)
	Correct(ctx context.Context, recordID string, req *CorrectionRequest) (*RecordResponse, error)
}
