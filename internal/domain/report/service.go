package report

import "context"

type Service interface {
	AttendanceSummary(ctx context.Context, req *SummaryRequest) ([]*SummaryRow, error)
	AnomalyList(ctx context.Context, req *SummaryRequest) ([]*AnomalyRow, error)
}
