package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/approval"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/attendance"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/leave"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/makeup"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/notification"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/overtime"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/user"
	"github.com/hongchuan-tech/ams-backend-go/internal/service/identity"
)

const timeLayout = "2006-01-02 15:04:05"

type ApprovalServiceImpl struct {
	approvalRepo    approval.Repository
	leaveRepo       leave.Repository
	balanceRepo     leave.BalanceRepository
	overtimeRepo    overtime.Repository
	makeupRepo      makeup.Repository
	quotaRepo       makeup.QuotaRepository
	attendanceRepo  attendance.Repository
	relationRepo    company.RelationRepository
	employeeRepo    user.EmployeeRepository
	notificationSvc notification.Service
	location        *time.Location
}

func NewApprovalService(
	approvalRepo approval.Repository,
	leaveRepo leave.Repository,
	balanceRepo leave.BalanceRepository,
	overtimeRepo overtime.Repository,
	makeupRepo makeup.Repository,
	quotaRepo makeup.QuotaRepository,
	attendanceRepo attendance.Repository,
	relationRepo company.RelationRepository,
	employeeRepo user.EmployeeRepository,
	notificationSvc notification.Service,
	location *time.Location,
) approval.Service {
	return &ApprovalServiceImpl{
		approvalRepo:    approvalRepo,
		leaveRepo:       leaveRepo,
		balanceRepo:     balanceRepo,
		overtimeRepo:    overtimeRepo,
		makeupRepo:      makeupRepo,
		quotaRepo:       quotaRepo,
		attendanceRepo:  attendanceRepo,
		relationRepo:    relationRepo,
		employeeRepo:    employeeRepo,
		notificationSvc: notificationSvc,
		location:        location,
	}
}

// Pending implements approval.Service.
func (s *ApprovalServiceImpl) Pending(ctx context.Context) ([]*approval.PendingItem, error) {
	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}
	if !id.HasPermission(user.PermissionApprove) {
		return nil, user.ErrManagerAccessRequired
	}

	records, err := s.approvalRepo.ListPendingByApprover(ctx, id.RelationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}

	items := make([]*approval.PendingItem, 0, len(records))
	for _, record := range records {
		item, err := s.toPendingItem(ctx, record)
		if err != nil {
			slog.Error("Failed to load request behind approval", "approval_id", record.ID, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *ApprovalServiceImpl) toPendingItem(ctx context.Context, record *approval.Record) (*approval.PendingItem, error) {
	item := &approval.PendingItem{
		ApprovalID:  record.ID,
		RequestKind: string(record.RequestKind),
		RequestID:   record.RequestID,
		RequestedAt: record.CreatedAt.In(s.location).Format(timeLayout),
	}

	var relationID string
	switch record.RequestKind {
	case approval.KindLeave:
		req, err := s.leaveRepo.GetByID(ctx, record.RequestID)
		if err != nil {
			return nil, err
		}
		relationID = req.RelationID
		item.RequestedHours = req.LeaveHours
		item.Summary = fmt.Sprintf("%s leave, %s to %s",
			req.LeaveType,
			req.StartTime.In(s.location).Format(timeLayout),
			req.EndTime.In(s.location).Format(timeLayout),
		)
	case approval.KindOvertime:
		req, err := s.overtimeRepo.GetByID(ctx, record.RequestID)
		if err != nil {
			return nil, err
		}
		relationID = req.RelationID
		item.RequestedHours = req.OvertimeHours
		item.Summary = fmt.Sprintf("overtime on %s, %s to %s", req.Date, req.StartTime, req.EndTime)
	case approval.KindMakeup:
		req, err := s.makeupRepo.GetByID(ctx, record.RequestID)
		if err != nil {
			return nil, err
		}
		relationID = req.RelationID
		item.Summary = fmt.Sprintf("makeup %s on %s", req.MakeupType, req.Date)
	default:
		return nil, fmt.Errorf("unknown request kind %q", record.RequestKind)
	}

	relation, err := s.relationRepo.GetByID(ctx, relationID)
	if err != nil {
		return nil, err
	}
	item.ApplicantID = relation.EmployeeID

	employee, err := s.employeeRepo.GetByEmployeeID(ctx, relation.EmployeeID)
	if err == nil {
		item.ApplicantName = employee.Name
	}
	return item, nil
}

// Approve implements approval.Service. The comment is optional.
func (s *ApprovalServiceImpl) Approve(ctx context.Context, approvalID string, req *approval.DecisionRequest) (*approval.DecisionResponse, error) {
	return s.decide(ctx, approvalID, approval.StatusApproved, req.Comment)
}

// Reject implements approval.Service. The comment is mandatory.
func (s *ApprovalServiceImpl) Reject(ctx context.Context, approvalID string, req *approval.DecisionRequest) (*approval.DecisionResponse, error) {
	if err := req.ValidateReject(); err != nil {
		return nil, err
	}
	return s.decide(ctx, approvalID, approval.StatusRejected, req.Comment)
}

// Batch implements approval.Service.
func (s *ApprovalServiceImpl) Batch(ctx context.Context, req *approval.BatchRequest) (*approval.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := approval.StatusApproved
	if approval.BatchAction(req.Action) == approval.BatchReject {
		status = approval.StatusRejected
	}

	resp := &approval.BatchResponse{Failed: make(map[string]string)}
	for _, approvalID := range req.ApprovalIDs {
		if _, err := s.decide(ctx, approvalID, status, req.Comment); err != nil {
			resp.Failed[approvalID] = err.Error()
			continue
		}
		resp.Succeeded = append(resp.Succeeded, approvalID)
	}
	if len(resp.Failed) == 0 {
		resp.Failed = nil
	}
	return resp, nil
}

func (s *ApprovalServiceImpl) decide(ctx context.Context, approvalID string, status approval.Status, comment string) (*approval.DecisionResponse, error) {
	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}
	if !id.HasPermission(user.PermissionApprove) {
		return nil, user.ErrManagerAccessRequired
	}

	record, err := s.approvalRepo.GetByID(ctx, approvalID)
	if err != nil {
		return nil, err
	}
	if record.ApproverRelationID != id.RelationID {
		return nil, approval.ErrNotApprover
	}
	if record.Status != approval.StatusPending {
		return nil, approval.ErrAlreadyDecided
	}

	applicantID, err := s.applyDecision(ctx, record, status)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record.Status = status
	record.ApprovedAt = &now
	if comment != "" {
		record.Comment = &comment
	}

	decided, err := s.approvalRepo.Decide(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to record approval decision: %w", err)
	}

	s.notifyApplicant(ctx, decided, applicantID)

	return &approval.DecisionResponse{
		ApprovalID: decided.ID,
		Status:     string(decided.Status),
		Comment:    decided.Comment,
		ApprovedAt: now.In(s.location).Format(timeLayout),
	}, nil
}

// applyDecision updates the underlying request and its side effects, and
// returns the applicant's employee ID for notification.
func (s *ApprovalServiceImpl) applyDecision(ctx context.Context, record *approval.Record, status approval.Status) (string, error) {
	switch record.RequestKind {
	case approval.KindLeave:
		return s.applyLeaveDecision(ctx, record.RequestID, status)
	case approval.KindOvertime:
		return s.applyOvertimeDecision(ctx, record.RequestID, status)
	case approval.KindMakeup:
		return s.applyMakeupDecision(ctx, record.RequestID, status)
	default:
		return "", fmt.Errorf("unknown request kind %q", record.RequestKind)
	}
}

func (s *ApprovalServiceImpl) applyLeaveDecision(ctx context.Context, requestID string, status approval.Status) (string, error) {
	req, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return "", err
	}
	if req.Status != leave.StatusPending {
		return "", leave.ErrNotPending
	}

	leaveStatus := leave.StatusApproved
	if status == approval.StatusRejected {
		leaveStatus = leave.StatusRejected
	}
	if _, err := s.leaveRepo.UpdateStatus(ctx, requestID, leaveStatus); err != nil {
		return "", fmt.Errorf("failed to update leave status: %w", err)
	}

	relation, err := s.relationRepo.GetByID(ctx, req.RelationID)
	if err != nil {
		return "", err
	}

	if leaveStatus == leave.StatusApproved {
		balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, relation.EmployeeID, req.LeaveType, req.StartTime.Year())
		if err == nil {
			if err := s.balanceRepo.AddUsedHours(ctx, balance.ID, req.LeaveHours); err != nil {
				slog.Error("Failed to deduct leave balance", "leave_id", requestID, "error", err)
			}
		} else if !errors.Is(err, leave.ErrBalanceNotFound) {
			return "", fmt.Errorf("failed to load leave balance: %w", err)
		}
	}
	return relation.EmployeeID, nil
}

func (s *ApprovalServiceImpl) applyOvertimeDecision(ctx context.Context, requestID string, status approval.Status) (string, error) {
	req, err := s.overtimeRepo.GetByID(ctx, requestID)
	if err != nil {
		return "", err
	}
	if req.Status != overtime.StatusPending {
		return "", overtime.ErrNotPending
	}

	overtimeStatus := overtime.StatusApproved
	if status == approval.StatusRejected {
		overtimeStatus = overtime.StatusRejected
	}
	if _, err := s.overtimeRepo.UpdateStatus(ctx, requestID, overtimeStatus); err != nil {
		return "", fmt.Errorf("failed to update overtime status: %w", err)
	}

	relation, err := s.relationRepo.GetByID(ctx, req.RelationID)
	if err != nil {
		return "", err
	}
	return relation.EmployeeID, nil
}

func (s *ApprovalServiceImpl) applyMakeupDecision(ctx context.Context, requestID string, status approval.Status) (string, error) {
	req, err := s.makeupRepo.GetByID(ctx, requestID)
	if err != nil {
		return "", err
	}
	if req.Status != makeup.StatusPending {
		return "", makeup.ErrNotPending
	}

	makeupStatus := makeup.StatusApproved
	if status == approval.StatusRejected {
		makeupStatus = makeup.StatusRejected
	}
	if _, err := s.makeupRepo.UpdateStatus(ctx, requestID, makeupStatus); err != nil {
		return "", fmt.Errorf("failed to update makeup status: %w", err)
	}

	relation, err := s.relationRepo.GetByID(ctx, req.RelationID)
	if err != nil {
		return "", err
	}

	if makeupStatus == makeup.StatusApproved {
		if err := s.materializeMakeup(ctx, req); err != nil {
			return "", err
		}

		quota, err := s.quotaRepo.GetByEmployeeYear(ctx, relation.EmployeeID, time.Now().In(s.location).Year())
		if err == nil {
			if err := s.quotaRepo.IncrementUsed(ctx, quota.ID); err != nil {
				slog.Error("Failed to consume makeup quota", "makeup_id", requestID, "error", err)
			}
		}
	}
	return relation.EmployeeID, nil
}

// materializeMakeup patches or creates the attendance row an approved makeup
// request stands in for.
func (s *ApprovalServiceImpl) materializeMakeup(ctx context.Context, req *makeup.Request) error {
	existing, err := s.attendanceRepo.GetByRelationAndDate(ctx, req.RelationID, req.Date)
	if err != nil && !errors.Is(err, attendance.ErrRecordNotFound) {
		return fmt.Errorf("failed to load attendance for makeup: %w", err)
	}

	record := existing
	if record == nil {
		record = &attendance.Record{
			RelationID: req.RelationID,
			Date:       req.Date,
		}
	}

	if req.CheckinTime != nil {
		checkin, err := time.ParseInLocation(timeLayout, req.Date+" "+*req.CheckinTime+":00", s.location)
		if err != nil {
			return fmt.Errorf("failed to parse makeup check-in time: %w", err)
		}
		record.CheckinTime = checkin
	}
	if req.CheckoutTime != nil {
		checkout, err := time.ParseInLocation(timeLayout, req.Date+" "+*req.CheckoutTime+":00", s.location)
		if err != nil {
			return fmt.Errorf("failed to parse makeup check-out time: %w", err)
		}
		record.CheckoutTime = checkout
	}

	if record.CheckinTime.IsZero() {
		record.CheckinTime = record.CheckoutTime
	}
	if record.CheckoutTime.IsZero() || record.CheckoutTime.Before(record.CheckinTime) {
		record.CheckoutTime = record.CheckinTime
	}
	if record.CheckoutTime.After(record.CheckinTime) {
		record.WorkHours = roundHours(record.CheckoutTime.Sub(record.CheckinTime))
	}
	record.Corrected = true

	if existing == nil {
		_, err = s.attendanceRepo.Create(ctx, record)
	} else {
		_, err = s.attendanceRepo.UpdateTimes(ctx, record.ID, record)
	}
	if err != nil {
		return fmt.Errorf("failed to materialize makeup attendance: %w", err)
	}
	return nil
}

func (s *ApprovalServiceImpl) notifyApplicant(ctx context.Context, record *approval.Record, applicantID string) {
	notificationType := notification.TypeRequestApproved
	title := "Request approved"
	message := fmt.Sprintf("Your %s request was approved.", record.RequestKind)
	if record.Status == approval.StatusRejected {
		notificationType = notification.TypeRequestRejected
		title = "Request rejected"
		message = fmt.Sprintf("Your %s request was rejected.", record.RequestKind)
		if record.Comment != nil {
			message = fmt.Sprintf("%s Reason: %s", message, *record.Comment)
		}
	}

	if err := s.notificationSvc.Notify(ctx, applicantID, notificationType, title, message); err != nil {
		slog.Error("Failed to notify applicant of decision", "approval_id", record.ID, "error", err)
	}
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
