package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/approval"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/leave"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/notification"
	"github.com/hongchuan-tech/ams-backend-go/internal/service/identity"
)

const timeLayout = "2006-01-02 15:04:05"

type LeaveServiceImpl struct {
	leaveRepo       leave.Repository
	balanceRepo     leave.BalanceRepository
	relationRepo    company.RelationRepository
	approvalRepo    approval.Repository
	notificationSvc notification.Service
	location        *time.Location
}

func NewLeaveService(
	leaveRepo leave.Repository,
	balanceRepo leave.BalanceRepository,
	relationRepo company.RelationRepository,
	approvalRepo approval.Repository,
	notificationSvc notification.Service,
	location *time.Location,
) leave.Service {
	return &LeaveServiceImpl{
		leaveRepo:       leaveRepo,
		balanceRepo:     balanceRepo,
		relationRepo:    relationRepo,
		approvalRepo:    approvalRepo,
		notificationSvc: notificationSvc,
		location:        location,
	}
}

// Apply implements leave.Service.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req *leave.ApplyRequest) (*leave.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(timeLayout, req.StartTime, s.location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}
	end, err := time.ParseInLocation(timeLayout, req.EndTime, s.location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end time: %w", err)
	}

	hours := leave.CalculateHours(start, end)
	if hours <= 0 {
		return nil, leave.ErrNonPositiveHours
	}

	leaveType := leave.Type(req.LeaveType)

	// Balance is a precondition only for types that carry one; types
	// without a seeded balance (marriage, bereavement) pass through.
	balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, id.EmployeeID, leaveType, start.Year())
	if err == nil && balance.RemainingHours() < hours {
		return nil, leave.ErrInsufficientBalance
	}
	if err != nil && !errors.Is(err, leave.ErrBalanceNotFound) {
		return nil, fmt.Errorf("failed to check leave balance: %w", err)
	}

	record := &leave.Record{
		RelationID:           id.RelationID,
		LeaveType:            leaveType,
		StartTime:            start,
		EndTime:              end,
		LeaveHours:           hours,
		LeaveReason:          req.LeaveReason,
		SubstituteEmployeeID: req.SubstituteEmployeeID,
		Status:               leave.StatusPending,
	}

	created, err := s.leaveRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to create leave record: %w", err)
	}

	s.routeForApproval(ctx, id, created)

	return s.toResponse(created), nil
}

// routeForApproval files the approval row for the applicant's manager and
// notifies them. Routing failures do not undo the submission.
func (s *LeaveServiceImpl) routeForApproval(ctx context.Context, id identity.Identity, record *leave.Record) {
	relation, err := s.relationRepo.GetByID(ctx, id.RelationID)
	if err != nil || relation.ManagerID == nil {
		slog.Warn("Leave request has no approver to route to", "leave_id", record.ID, "relation_id", id.RelationID)
		return
	}

	_, err = s.approvalRepo.Create(ctx, &approval.Record{
		RequestKind:        approval.KindLeave,
		RequestID:          record.ID,
		ApproverRelationID: *relation.ManagerID,
		Status:             approval.StatusPending,
	})
	if err != nil {
		slog.Error("Failed to create approval record for leave request", "leave_id", record.ID, "error", err)
		return
	}

	manager, err := s.relationRepo.GetByID(ctx, *relation.ManagerID)
	if err != nil {
		return
	}
	_ = s.notificationSvc.Notify(ctx, manager.EmployeeID,
		notification.TypeRequestSubmitted,
		"Leave request submitted",
		fmt.Sprintf("A %s leave request for %.2f hours is waiting for your decision.", record.LeaveType, record.LeaveHours),
	)
}

// ListOwn implements leave.Service.
func (s *LeaveServiceImpl) ListOwn(ctx context.Context) ([]*leave.RecordResponse, error) {
	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.leaveRepo.ListByRelation(ctx, id.RelationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}

	responses := make([]*leave.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, s.toResponse(record))
	}
	return responses, nil
}

// Balances implements leave.Service.
func (s *LeaveServiceImpl) Balances(ctx context.Context) ([]*leave.BalanceResponse, error) {
	id, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	year := time.Now().In(s.location).Year()
	balances, err := s.balanceRepo.ListByEmployeeYear(ctx, id.EmployeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	responses := make([]*leave.BalanceResponse, 0, len(balances))
	for _, balance := range balances {
		responses = append(responses, &leave.BalanceResponse{
			Year:           balance.Year,
			LeaveType:      string(balance.LeaveType),
			TotalHours:     balance.TotalHours,
			UsedHours:      balance.UsedHours,
			RemainingHours: balance.RemainingHours(),
		})
	}
	return responses, nil
}

func (s *LeaveServiceImpl) toResponse(record *leave.Record) *leave.RecordResponse {
	return &leave.RecordResponse{
		ID:                   record.ID,
		RelationID:           record.RelationID,
		LeaveType:            string(record.LeaveType),
		StartTime:            record.StartTime.In(s.location).Format(timeLayout),
		EndTime:              record.EndTime.In(s.location).Format(timeLayout),
		LeaveHours:           record.LeaveHours,
		LeaveReason:          record.LeaveReason,
		SubstituteEmployeeID: record.SubstituteEmployeeID,
		Status:               string(record.Status),
		CreatedAt:            record.CreatedAt.In(s.location).Format(timeLayout),
	}
}
