package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/approval"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/notification"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/overtime"
	"github.com/hongchuan-tech/ams-backend-go/internal/service/identity"
)

const timeLayout = "2006-01-02 15:04:05"

type OvertimeServiceImpl struct {
	overtimeRepo    overtime.Repository
	relationRepo    company.RelationRepository
	approvalRepo    approval.Repository
	notificationSvc notification.Service
	location        *time.Location
}

func NewOvertimeService(
	overtimeRepo overtime.Repository,
	relationRepo company.RelationRepository,
	approvalRepo approval.Repository,
	notificationSvc notification.Service,
	location *time.Location,
) overtime.Service {
	return &OvertimeServiceImpl{
		overtimeRepo:    overtimeRepo,
		relationRepo:    relationRepo,
		approvalRepo:    approvalRepo,
		notificationSvc: notificationSvc,
		location:        location,
	}
}

// Apply implements overtime.Service.
func (s *OvertimeServiceImpl) Apply(ctx context.Context, req *overtime.ApplyRequest) (*overtime.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}

	hours, err := overtime.CalculateHours(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate overtime hours: %w", err)
	}
	if hours <= 0 {
		return nil, overtime.ErrNonPositiveHours
	}

	record := &overtime.Record{
		RelationID:       id.RelationID,
		Date:             req.Date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		OvertimeHours:    hours,
		Reason:           req.Reason,
		CompensationType: overtime.CompensationType(req.CompensationType),
		Status:           overtime.StatusPending,
	}

	created, err := s.overtimeRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to create overtime record: %w", err)
	}

	s.routeForApproval(ctx, id, created)

	return s.toResponse(created), nil
}

func (s *OvertimeServiceImpl) routeForApproval(ctx context.Context, id identity.Identity, record *overtime.Record) {
	relation, err := s.relationRepo.GetByID(ctx, id.RelationID)
	if err != nil || relation.ManagerID == nil {
		slog.Warn("Overtime request has no approver to route to", "overtime_id", record.ID, "relation_id", id.RelationID)
		return
	}

	_, err = s.approvalRepo.Create(ctx, &approval.Record{
		RequestKind:        approval.KindOvertime,
		RequestID:          record.ID,
		ApproverRelationID: *relation.ManagerID,
		Status:             approval.StatusPending,
	})
	if err != nil {
		slog.Error("Failed to create approval record for overtime request", "overtime_id", record.ID, "error", err)
		return
	}

	manager, err := s.relationRepo.GetByID(ctx, *relation.ManagerID)
	if err != nil {
		return
	}
	_ = s.notificationSvc.Notify(ctx, manager.EmployeeID,
		notification.TypeRequestSubmitted,
		"Overtime request submitted",
		fmt.Sprintf("An overtime request for %.2f hours on %s is waiting for your decision.", record.OvertimeHours, record.Date),
	)
}

// ListOwn implements overtime.Service.
func (s *OvertimeServiceImpl) ListOwn(ctx context.Context) ([]*overtime.RecordResponse, error) {
	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.overtimeRepo.ListByRelation(ctx, id.RelationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime records: %w", err)
	}

	responses := make([]*overtime.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, s.toResponse(record))
	}
	return responses, nil
}

// Cancel implements overtime.Service.
func (s *OvertimeServiceImpl) Cancel(ctx context.Context, recordID string) (*overtime.RecordResponse, error) {
	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.overtimeRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.RelationID != id.RelationID {
		return nil, overtime.ErrNotOwner
	}
	if record.Status != overtime.StatusPending {
		return nil, overtime.ErrNotPending
	}

	cancelled, err := s.overtimeRepo.UpdateStatus(ctx, recordID, overtime.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel overtime record: %w", err)
	}
	return s.toResponse(cancelled), nil
}

func (s *OvertimeServiceImpl) toResponse(record *overtime.Record) *overtime.RecordResponse {
	return &overtime.RecordResponse{
		ID:               record.ID,
		RelationID:       record.RelationID,
		Date:             record.Date,
		StartTime:        record.StartTime,
		EndTime:          record.EndTime,
		OvertimeHours:    record.OvertimeHours,
		Reason:           record.Reason,
		CompensationType: string(record.CompensationType),
		Status:           string(record.Status),
		CreatedAt:        record.CreatedAt.In(s.location).Format(timeLayout),
	}
}
