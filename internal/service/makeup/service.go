package makeup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/approval"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/makeup"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/notification"
	"github.com/hongchuan-tech/ams-backend-go/internal/service/identity"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04:05"

	// maxBackfillDays bounds how far back a missed clock can be made up.
	maxBackfillDays = 7
)

type MakeupServiceImpl struct {
	makeupRepo      makeup.Repository
	quotaRepo       makeup.QuotaRepository
	relationRepo    company.RelationRepository
	approvalRepo    approval.Repository
	notificationSvc notification.Service
	location        *time.Location
}

func NewMakeupService(
	makeupRepo makeup.Repository,
	quotaRepo makeup.QuotaRepository,
	relationRepo company.RelationRepository,
	approvalRepo approval.Repository,
	notificationSvc notification.Service,
	location *time.Location,
) makeup.Service {
	return &MakeupServiceImpl{
		makeupRepo:      makeupRepo,
		quotaRepo:       quotaRepo,
		relationRepo:    relationRepo,
		approvalRepo:    approvalRepo,
		notificationSvc: notificationSvc,
		location:        location,
	}
}

// Apply implements makeup.Service.
func (s *MakeupServiceImpl) Apply(ctx context.Context, req *makeup.ApplyRequest) (*makeup.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}

	requestDate, err := time.ParseInLocation(dateLayout, req.Date, s.location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse makeup date: %w", err)
	}

	today := time.Now().In(s.location).Format(dateLayout)
	if req.Date >= today {
		return nil, makeup.ErrDateNotPast
	}
	oldest := time.Now().In(s.location).AddDate(0, 0, -maxBackfillDays).Format(dateLayout)
	if req.Date < oldest {
		return nil, makeup.ErrDateTooOld
	}

	quota, err := s.quotaRepo.GetByEmployeeYear(ctx, id.EmployeeID, requestDate.Year())
	if err != nil {
		if errors.Is(err, makeup.ErrQuotaNotFound) {
			return nil, makeup.ErrQuotaExhausted
		}
		return nil, fmt.Errorf("failed to check makeup quota: %w", err)
	}
	if quota.Remaining() <= 0 {
		return nil, makeup.ErrQuotaExhausted
	}

	request := &makeup.Request{
		RelationID:   id.RelationID,
		Date:         req.Date,
		MakeupType:   makeup.Type(req.MakeupType),
		CheckinTime:  req.CheckinTime,
		CheckoutTime: req.CheckoutTime,
		Reason:       req.Reason,
		Status:       makeup.StatusPending,
	}

	created, err := s.makeupRepo.Create(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to create makeup request: %w", err)
	}

	s.routeForApproval(ctx, id, created)

	return s.toResponse(created), nil
}

func (s *MakeupServiceImpl) routeForApproval(ctx context.Context, id identity.Identity, request *makeup.Request) {
	relation, err := s.relationRepo.GetByID(ctx, id.RelationID)
	if err != nil || relation.ManagerID == nil {
		slog.Warn("Makeup request has no approver to route to", "makeup_id", request.ID, "relation_id", id.RelationID)
		return
	}

	_, err = s.approvalRepo.Create(ctx, &approval.Record{
		RequestKind:        approval.KindMakeup,
		RequestID:          request.ID,
		ApproverRelationID: *relation.ManagerID,
		Status:             approval.StatusPending,
	})
	if err != nil {
		slog.Error("Failed to create approval record for makeup request", "makeup_id", request.ID, "error", err)
		return
	}

	manager, err := s.relationRepo.GetByID(ctx, *relation.ManagerID)
	if err != nil {
		return
	}
	_ = s.notificationSvc.Notify(ctx, manager.EmployeeID,
		notification.TypeRequestSubmitted,
		"Makeup clock request submitted",
		fmt.Sprintf("A makeup clock request for %s is waiting for your decision.", request.Date),
	)
}

// ListOwn implements makeup.Service.
func (s *MakeupServiceImpl) ListOwn(ctx context.Context) ([]*makeup.RequestResponse, error) {
	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.makeupRepo.ListByRelation(ctx, id.RelationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list makeup requests: %w", err)
	}

	responses := make([]*makeup.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, s.toResponse(request))
	}
	return responses, nil
}

// Quota implements makeup.Service.
func (s *MakeupServiceImpl) Quota(ctx context.Context) (*makeup.QuotaResponse, error) {
	id, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	year := time.Now().In(s.location).Year()
	quota, err := s.quotaRepo.GetByEmployeeYear(ctx, id.EmployeeID, year)
	if err != nil {
		if errors.Is(err, makeup.ErrQuotaNotFound) {
			return &makeup.QuotaResponse{Year: year}, nil
		}
		return nil, fmt.Errorf("failed to look up makeup quota: %w", err)
	}

	return &makeup.QuotaResponse{
		Year:      quota.Year,
		Total:     quota.Total,
		Used:      quota.Used,
		Remaining: quota.Remaining(),
	}, nil
}

func (s *MakeupServiceImpl) toResponse(request *makeup.Request) *makeup.RequestResponse {
	return &makeup.RequestResponse{
		ID:           request.ID,
		RelationID:   request.RelationID,
		Date:         request.Date,
		MakeupType:   string(request.MakeupType),
		CheckinTime:  request.CheckinTime,
		CheckoutTime: request.CheckoutTime,
		Reason:       request.Reason,
		Status:       string(request.Status),
		CreatedAt:    request.CreatedAt.In(s.location).Format(timeLayout),
	}
}
