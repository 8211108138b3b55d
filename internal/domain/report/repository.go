package report

import "context"

// Repository reads pre-aggregated views; nothing here mutates.
type Repository interface {
	AttendanceSummary(ctx context.Context, companyID string, month string) ([]*SummaryRow, error)
	AnomalyList(ctx context.Context, companyID string, month string) ([]*AnomalyRow, error)
}
