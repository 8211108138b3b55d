package report

import (
	"context"
	"fmt"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/report"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/user"
	"github.com/hongchuan-tech/ams-backend-go/internal/service/identity"
)

type ReportServiceImpl struct {
	reportRepo report.Repository
}

func NewReportService(reportRepo report.Repository) report.Service {
	return &ReportServiceImpl{reportRepo: reportRepo}
}

// AttendanceSummary implements report.Service.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, req *report.SummaryRequest) ([]*report.SummaryRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}
	if !id.HasPermission(user.PermissionReportsView) {
		return nil, user.ErrManagerAccessRequired
	}

	rows, err := s.reportRepo.AttendanceSummary(ctx, id.CompanyID, req.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance summary: %w", err)
	}
	return rows, nil
}

// AnomalyList implements report.Service.
func (s *ReportServiceImpl) AnomalyList(ctx context.Context, req *report.SummaryRequest) ([]*report.AnomalyRow, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}
	if !id.HasPermission(user.PermissionReportsView) {
		return nil, user.ErrManagerAccessRequired
	}

	rows, err := s.reportRepo.AnomalyList(ctx, id.CompanyID, req.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to build anomaly list: %w", err)
	}
	return rows, nil
}
