package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/attendance"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/user"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/geo"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/scan"
	"github.com/hongchuan-tech/ams-backend-go/internal/service/identity"
)

// maxScanDistanceMeters is how far a device may be from the scanned company
// point for the clock action to count.
const maxScanDistanceMeters = 2000

const timeLayout = "2006-01-02 15:04:05"

// Error classes surfaced on scan rejections.
const (
	classEnvironment = "environment"
	classValidation  = "validation"
	classBusiness    = "business"
)

const (
	successHoldSeconds  = 5
	rejectedHoldSeconds = 2
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.Repository
	companyRepo    company.Repository
	scans          *scan.Manager
	location       *time.Location
}

func NewAttendanceService(
	attendanceRepo attendance.Repository,
	companyRepo company.Repository,
	scans *scan.Manager,
	location *time.Location,
) attendance.Service {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		companyRepo:    companyRepo,
		scans:          scans,
		location:       location,
	}
}

// StartScanSession implements attendance.Service.
func (a *AttendanceServiceImpl) StartScanSession(ctx context.Context) (*attendance.StartSessionResponse, error) {
	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}

	session := a.scans.Start(id.RelationID)
	return &attendance.StartSessionResponse{
		SessionID: session.ID,
		State:     string(session.State),
	}, nil
}

// ScanSessionState implements attendance.Service.
func (a *AttendanceServiceImpl) ScanSessionState(ctx context.Context, sessionID string) (*attendance.StartSessionResponse, error) {
	if _, err := identity.RequireRelation(ctx); err != nil {
		return nil, err
	}

	return &attendance.StartSessionResponse{
		SessionID: sessionID,
		State:     string(a.scans.SessionState(sessionID)),
	}, nil
}

// Scan implements attendance.Service. The decode-dedup lives in the scan
// manager: only the first decode of a session gets past BeginDecode, so a
// camera firing its callback several times per second cannot double-clock.
func (a *AttendanceServiceImpl) Scan(ctx context.Context, req *attendance.ScanRequest) (*attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}

	if err := a.scans.BeginDecode(req.SessionID, id.RelationID); err != nil {
		return nil, err
	}

	record, rejection := a.reconcile(ctx, id, req)
	if rejection != nil {
		if err := a.scans.Complete(req.SessionID, false); err != nil {
			return nil, err
		}
		return rejection, nil
	}

	if err := a.scans.Complete(req.SessionID, true); err != nil {
		return nil, err
	}

	return &attendance.ScanResponse{
		State:        string(scan.StateSuccess),
		Message:      successMessage(req.Mode),
		Record:       a.toRecordResponse(record),
		HoldDuration: successHoldSeconds,
	}, nil
}

// reconcile runs the clock decision for one honored decode. It returns
// either the written record or a rejection response; rejections are decided
// before any repository write is attempted.
func (a *AttendanceServiceImpl) reconcile(ctx context.Context, id identity.Identity, req *attendance.ScanRequest) (*attendance.Record, *attendance.ScanResponse) {
	if req.Position == nil {
		class := geo.PositionErrorClass(req.PositionError)
		return nil, a.reject(classEnvironment, class.Message())
	}

	point, err := geo.ParsePayload(req.Payload)
	if err != nil {
		return nil, a.reject(classValidation, attendance.ErrInvalidQRPayload.Error())
	}

	comp, err := a.companyRepo.GetByID(ctx, id.CompanyID)
	if err != nil {
		return nil, a.reject(classBusiness, attendance.ErrUnknownLocation.Error())
	}

	// Membership first: a QR from another company is rejected even when the
	// device is standing right next to it.
	if comp.Location != point {
		return nil, a.reject(classBusiness, attendance.ErrUnknownLocation.Error())
	}

	if geo.Distance(*req.Position, point) > maxScanDistanceMeters {
		return nil, a.reject(classBusiness, attendance.ErrOutsideAllowedRadius.Error())
	}

	nowLocal := time.Now().In(a.location)
	formatted := nowLocal.Format(timeLayout)
	// The date key is the first 10 characters of the formatted local time,
	// the same string the timestamps carry, so records cannot mis-bucket
	// across a date boundary.
	date := formatted[:10]

	switch req.Mode {
	case attendance.ModeIn:
		return a.clockIn(ctx, id.RelationID, date, nowLocal, point)
	case attendance.ModeOut:
		return a.clockOut(ctx, id.RelationID, date, nowLocal, point)
	default:
		return nil, a.reject(classValidation, "unknown scan mode")
	}
}

func (a *AttendanceServiceImpl) clockIn(ctx context.Context, relationID, date string, now time.Time, point geo.Point) (*attendance.Record, *attendance.ScanResponse) {
	existing, err := a.attendanceRepo.GetByRelationAndDate(ctx, relationID, date)
	if err != nil && !errors.Is(err, attendance.ErrRecordNotFound) {
		return nil, a.reject(classBusiness, fmt.Sprintf("failed to load today's attendance: %v", err))
	}
	if existing != nil {
		return nil, a.reject(classBusiness, attendance.ErrAlreadyCheckedIn.Error())
	}

	// A fresh row mirrors checkin into the checkout fields; clock-out
	// overwrites them later.
	record := &attendance.Record{
		RelationID:       relationID,
		Date:             date,
		CheckinTime:      now,
		CheckoutTime:     now,
		CheckinLocation:  point.LocationString(),
		CheckoutLocation: point.LocationString(),
		WorkHours:        0,
	}

	created, err := a.attendanceRepo.Create(ctx, record)
	if err != nil {
		return nil, a.reject(classBusiness, fmt.Sprintf("failed to record clock-in: %v", err))
	}
	return created, nil
}

func (a *AttendanceServiceImpl) clockOut(ctx context.Context, relationID, date string, now time.Time, point geo.Point) (*attendance.Record, *attendance.ScanResponse) {
	existing, err := a.attendanceRepo.GetByRelationAndDate(ctx, relationID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return nil, a.reject(classBusiness, attendance.ErrNoCheckInRecord.Error())
		}
		return nil, a.reject(classBusiness, fmt.Sprintf("failed to load today's attendance: %v", err))
	}
	if existing.CheckoutTime.After(existing.CheckinTime) {
		return nil, a.reject(classBusiness, attendance.ErrAlreadyCheckedOut.Error())
	}

	existing.CheckoutTime = now
	existing.CheckoutLocation = point.LocationString()
	existing.WorkHours = roundHours(now.Sub(existing.CheckinTime))

	patched, err := a.attendanceRepo.PatchCheckout(ctx, existing)
	if err != nil {
		return nil, a.reject(classBusiness, fmt.Sprintf("failed to record clock-out: %v", err))
	}
	return patched, nil
}

func (a *AttendanceServiceImpl) reject(class, message string) *attendance.ScanResponse {
	return &attendance.ScanResponse{
		State:        string(scan.StateRejected),
		Message:      message,
		ErrorClass:   class,
		HoldDuration: rejectedHoldSeconds,
	}
}

// ListOwn implements attendance.Service.
func (a *AttendanceServiceImpl) ListOwn(ctx context.Context, req *attendance.ListRequest) ([]*attendance.RecordResponse, int, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, 0, err
	}
	req.RelationID = id.RelationID

	records, total, err := a.attendanceRepo.List(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return a.toRecordResponses(records), total, nil
}

// ListCompany implements attendance.Service.
func (a *AttendanceServiceImpl) ListCompany(ctx context.Context, req *attendance.ListRequest) ([]*attendance.RecordResponse, int, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}

	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, 0, err
	}
	if !id.HasPermission(user.PermissionAttendanceViewAll) {
		return nil, 0, user.ErrManagerAccessRequired
	}

	records, total, err := a.attendanceRepo.ListByCompany(ctx, id.CompanyID, req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list company attendance records: %w", err)
	}
	return a.toRecordResponses(records), total, nil
}

// Correct implements attendance.Service.
func (a *AttendanceServiceImpl) Correct(ctx context.Context, recordID string, req *attendance.CorrectionRequest) (*attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, err := identity.RequireRelation(ctx)
	if err != nil {
		return nil, err
	}
	if !id.HasPermission(user.PermissionAttendanceFix) {
		return nil, user.ErrAdminPrivilegeRequired
	}

	record, err := a.attendanceRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	checkin, err := time.ParseInLocation(timeLayout, req.CheckinTime, a.location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse check-in time: %w", err)
	}
	checkout, err := time.ParseInLocation(timeLayout, req.CheckoutTime, a.location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse check-out time: %w", err)
	}

	record.CheckinTime = checkin
	record.CheckoutTime = checkout
	record.Date = checkin.Format(timeLayout)[:10]
	record.WorkHours = roundHours(checkout.Sub(checkin))
	record.Corrected = true

	updated, err := a.attendanceRepo.UpdateTimes(ctx, recordID, record)
	if err != nil {
		return nil, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return a.toRecordResponse(updated), nil
}

func (a *AttendanceServiceImpl) toRecordResponse(record *attendance.Record) *attendance.RecordResponse {
	return &attendance.RecordResponse{
		ID:               record.ID,
		RelationID:       record.RelationID,
		Date:             record.Date,
		CheckinTime:      record.CheckinTime.In(a.location).Format(timeLayout),
		CheckoutTime:     record.CheckoutTime.In(a.location).Format(timeLayout),
		CheckinLocation:  record.CheckinLocation,
		CheckoutLocation: record.CheckoutLocation,
		WorkHours:        record.WorkHours,
		Corrected:        record.Corrected,
	}
}

func (a *AttendanceServiceImpl) toRecordResponses(records []*attendance.Record) []*attendance.RecordResponse {
	responses := make([]*attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, a.toRecordResponse(record))
	}
	return responses
}

func successMessage(mode attendance.Mode) string {
	if mode == attendance.ModeIn {
		return "Clock-in recorded"
	}
	return "Clock-out recorded"
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
