package approval

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/approval"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/attendance"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/leave"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/makeup"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/notification"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/overtime"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	approverRelationID  = "rel-mgr"
	applicantRelationID = "rel-emp"
	applicantEmployeeID = "E1001"
)

type fakeApprovalRepo struct {
	records map[string]*approval.Record
}

func (f *fakeApprovalRepo) Create(ctx context.Context, record *approval.Record) (*approval.Record, error) {
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now()
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeApprovalRepo) GetByID(ctx context.Context, id string) (*approval.Record, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, approval.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeApprovalRepo) ListPendingByApprover(ctx context.Context, approverRelationID string) ([]*approval.Record, error) {
	var out []*approval.Record
	for _, record := range f.records {
		if record.ApproverRelationID == approverRelationID && record.Status == approval.StatusPending {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeApprovalRepo) Decide(ctx context.Context, record *approval.Record) (*approval.Record, error) {
	f.records[record.ID] = record
	return record, nil
}

type fakeLeaveRepo struct {
	records map[string]*leave.Record
}

func (f *fakeLeaveRepo) Create(ctx context.Context, record *leave.Record) (*leave.Record, error) {
	record.ID = uuid.NewString()
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (*leave.Record, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, leave.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeLeaveRepo) ListByRelation(ctx context.Context, relationID string) ([]*leave.Record, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, status leave.Status) (*leave.Record, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, leave.ErrRecordNotFound
	}
	record.Status = status
	return record, nil
}

type fakeBalanceRepo struct {
	balances  map[string]*leave.Balance
	usedAdded float64
}

func (f *fakeBalanceRepo) GetByEmployeeTypeYear(ctx context.Context, employeeID string, leaveType leave.Type, year int) (*leave.Balance, error) {
	for _, balance := range f.balances {
		if balance.EmployeeID == employeeID && balance.LeaveType == leaveType && balance.Year == year {
			return balance, nil
		}
	}
	return nil, leave.ErrBalanceNotFound
}

func (f *fakeBalanceRepo) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]*leave.Balance, error) {
	return nil, nil
}

func (f *fakeBalanceRepo) AddUsedHours(ctx context.Context, id string, hours float64) error {
	f.usedAdded += hours
	if balance, ok := f.balances[id]; ok {
		balance.UsedHours += hours
	}
	return nil
}

type fakeOvertimeRepo struct {
	records map[string]*overtime.Record
}

func (f *fakeOvertimeRepo) Create(ctx context.Context, record *overtime.Record) (*overtime.Record, error) {
	record.ID = uuid.NewString()
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeOvertimeRepo) GetByID(ctx context.Context, id string) (*overtime.Record, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, overtime.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeOvertimeRepo) ListByRelation(ctx context.Context, relationID string) ([]*overtime.Record, error) {
	return nil, nil
}

func (f *fakeOvertimeRepo) UpdateStatus(ctx context.Context, id string, status overtime.Status) (*overtime.Record, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, overtime.ErrRecordNotFound
	}
	record.Status = status
	return record, nil
}

type fakeMakeupRepo struct {
	records map[string]*makeup.Request
}

func (f *fakeMakeupRepo) Create(ctx context.Context, request *makeup.Request) (*makeup.Request, error) {
	request.ID = uuid.NewString()
	f.records[request.ID] = request
	return request, nil
}

func (f *fakeMakeupRepo) GetByID(ctx context.Context, id string) (*makeup.Request, error) {
	request, ok := f.records[id]
	if !ok {
		return nil, makeup.ErrRequestNotFound
	}
	return request, nil
}

func (f *fakeMakeupRepo) ListByRelation(ctx context.Context, relationID string) ([]*makeup.Request, error) {
	return nil, nil
}

func (f *fakeMakeupRepo) UpdateStatus(ctx context.Context, id string, status makeup.Status) (*makeup.Request, error) {
	request, ok := f.records[id]
	if !ok {
		return nil, makeup.ErrRequestNotFound
	}
	request.Status = status
	return request, nil
}

type fakeQuotaRepo struct {
	quota *makeup.Quota
}

func (f *fakeQuotaRepo) GetByEmployeeYear(ctx context.Context, employeeID string, year int) (*makeup.Quota, error) {
	if f.quota == nil {
		return nil, makeup.ErrQuotaNotFound
	}
	return f.quota, nil
}

func (f *fakeQuotaRepo) IncrementUsed(ctx context.Context, id string) error {
	f.quota.Used++
	return nil
}

func (f *fakeQuotaRepo) ResetAll(ctx context.Context, year int, total int) error {
	return nil
}

type fakeAttendanceRepo struct {
	records map[string]*attendance.Record
	creates int
	updates int
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record *attendance.Record) (*attendance.Record, error) {
	f.creates++
	record.ID = uuid.NewString()
	f.records[record.RelationID+"|"+record.Date] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByRelationAndDate(ctx context.Context, relationID string, date string) (*attendance.Record, error) {
	record, ok := f.records[relationID+"|"+date]
	if !ok {
		return nil, attendance.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeAttendanceRepo) PatchCheckout(ctx context.Context, record *attendance.Record) (*attendance.Record, error) {
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (*attendance.Record, error) {
	return nil, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) List(ctx context.Context, req *attendance.ListRequest) ([]*attendance.Record, int, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListByCompany(ctx context.Context, companyID string, req *attendance.ListRequest) ([]*attendance.Record, int, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) UpdateTimes(ctx context.Context, id string, record *attendance.Record) (*attendance.Record, error) {
	f.updates++
	return record, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(ctx context.Context, date string) ([]*attendance.Record, error) {
	return nil, nil
}

type fakeRelationRepo struct {
	relations map[string]*company.Relation
}

func (f *fakeRelationRepo) GetByID(ctx context.Context, id string) (*company.Relation, error) {
	relation, ok := f.relations[id]
	if !ok {
		return nil, company.ErrRelationNotFound
	}
	return relation, nil
}

func (f *fakeRelationRepo) GetActiveByEmployeeID(ctx context.Context, employeeID string) (*company.Relation, error) {
	return nil, company.ErrRelationNotFound
}

func (f *fakeRelationRepo) ListByCompany(ctx context.Context, companyID string) ([]*company.Relation, error) {
	return nil, nil
}

func (f *fakeRelationRepo) ListByManager(ctx context.Context, managerRelationID string) ([]*company.Relation, error) {
	return nil, nil
}

type fakeEmployeeRepo struct{}

func (f *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (user.Employee, error) {
	return user.Employee{EmployeeID: employeeID, Name: "Test Employee", Role: user.RoleEmployee}, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (user.Employee, error) {
	return user.Employee{}, user.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) UpdatePassword(ctx context.Context, employeeID string, passwordHash string) error {
	return nil
}

type fakeNotificationSvc struct {
	sent []string
}

func (f *fakeNotificationSvc) List(ctx context.Context) ([]*notification.Response, error) {
	return nil, nil
}

func (f *fakeNotificationSvc) UnreadCount(ctx context.Context) (*notification.UnreadCountResponse, error) {
	return nil, nil
}

func (f *fakeNotificationSvc) MarkRead(ctx context.Context, notificationID string) error { return nil }

func (f *fakeNotificationSvc) MarkAllRead(ctx context.Context) error { return nil }

func (f *fakeNotificationSvc) StreamToken(ctx context.Context) (*notification.StreamTokenResponse, error) {
	return nil, nil
}

func (f *fakeNotificationSvc) Notify(ctx context.Context, recipientID string, notificationType notification.Type, title string, message string) error {
	f.sent = append(f.sent, recipientID)
	return nil
}

type fixture struct {
	svc          approval.Service
	approvalRepo *fakeApprovalRepo
	leaveRepo    *fakeLeaveRepo
	balanceRepo  *fakeBalanceRepo
	makeupRepo   *fakeMakeupRepo
	quotaRepo    *fakeQuotaRepo
	attRepo      *fakeAttendanceRepo
	notifySvc    *fakeNotificationSvc
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		approvalRepo: &fakeApprovalRepo{records: make(map[string]*approval.Record)},
		leaveRepo:    &fakeLeaveRepo{records: make(map[string]*leave.Record)},
		balanceRepo:  &fakeBalanceRepo{balances: make(map[string]*leave.Balance)},
		makeupRepo:   &fakeMakeupRepo{records: make(map[string]*makeup.Request)},
		quotaRepo:    &fakeQuotaRepo{quota: &makeup.Quota{ID: "q1", EmployeeID: applicantEmployeeID, Year: time.Now().Year(), Total: 3}},
		attRepo:      &fakeAttendanceRepo{records: make(map[string]*attendance.Record)},
		notifySvc:    &fakeNotificationSvc{},
	}

	relationRepo := &fakeRelationRepo{relations: map[string]*company.Relation{
		applicantRelationID: {ID: applicantRelationID, EmployeeID: applicantEmployeeID, CompanyID: "comp-001"},
		approverRelationID:  {ID: approverRelationID, EmployeeID: "E2001", CompanyID: "comp-001", Role: user.RoleManager},
	}}

	f.svc = NewApprovalService(
		f.approvalRepo,
		f.leaveRepo,
		f.balanceRepo,
		&fakeOvertimeRepo{records: make(map[string]*overtime.Record)},
		f.makeupRepo,
		f.quotaRepo,
		f.attRepo,
		relationRepo,
		&fakeEmployeeRepo{},
		f.notifySvc,
		time.UTC,
	)
	return f
}

func approverContext(t *testing.T) context.Context {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{
		"user_id":     "E2001",
		"relation_id": approverRelationID,
		"company_id":  "comp-001",
		"role":        "manager",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func (f *fixture) seedLeaveApproval(t *testing.T) string {
	t.Helper()
	record, err := f.leaveRepo.Create(context.Background(), &leave.Record{
		RelationID: applicantRelationID,
		LeaveType:  leave.TypeAnnual,
		StartTime:  time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2025, 3, 3, 17, 0, 0, 0, time.UTC),
		LeaveHours: 8,
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)

	approvalRecord, err := f.approvalRepo.Create(context.Background(), &approval.Record{
		RequestKind:        approval.KindLeave,
		RequestID:          record.ID,
		ApproverRelationID: approverRelationID,
		Status:             approval.StatusPending,
	})
	require.NoError(t, err)
	return approvalRecord.ID
}

func TestApprove_OptionalComment(t *testing.T) {
	f := newFixture(t)
	ctx := approverContext(t)
	approvalID := f.seedLeaveApproval(t)

	resp, err := f.svc.Approve(ctx, approvalID, &approval.DecisionRequest{})

	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusApproved), resp.Status)
	assert.Nil(t, resp.Comment)
	assert.Contains(t, f.notifySvc.sent, applicantEmployeeID)
}

func TestReject_RequiresComment(t *testing.T) {
	f := newFixture(t)
	ctx := approverContext(t)
	approvalID := f.seedLeaveApproval(t)

	_, err := f.svc.Reject(ctx, approvalID, &approval.DecisionRequest{})
	assert.ErrorIs(t, err, approval.ErrCommentRequired)

	resp, err := f.svc.Reject(ctx, approvalID, &approval.DecisionRequest{Comment: "coverage conflict"})
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusRejected), resp.Status)
	require.NotNil(t, resp.Comment)
	assert.Equal(t, "coverage conflict", *resp.Comment)
}

func TestApprove_LeaveDeductsBalance(t *testing.T) {
	f := newFixture(t)
	ctx := approverContext(t)
	f.balanceRepo.balances["b1"] = &leave.Balance{
		ID:         "b1",
		EmployeeID: applicantEmployeeID,
		Year:       2025,
		LeaveType:  leave.TypeAnnual,
		TotalHours: 80,
	}
	approvalID := f.seedLeaveApproval(t)

	_, err := f.svc.Approve(ctx, approvalID, &approval.DecisionRequest{})

	require.NoError(t, err)
	assert.Equal(t, 8.0, f.balanceRepo.usedAdded)
}

func TestApprove_AlreadyDecided(t *testing.T) {
	f := newFixture(t)
	ctx := approverContext(t)
	approvalID := f.seedLeaveApproval(t)

	_, err := f.svc.Approve(ctx, approvalID, &approval.DecisionRequest{})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, approvalID, &approval.DecisionRequest{})
	assert.ErrorIs(t, err, approval.ErrAlreadyDecided)
}

func TestApprove_MakeupMaterializesAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := approverContext(t)

	checkin := "09:00"
	checkout := "18:00"
	request, err := f.makeupRepo.Create(context.Background(), &makeup.Request{
		RelationID:   applicantRelationID,
		Date:         "2025-03-03",
		MakeupType:   makeup.TypeBoth,
		CheckinTime:  &checkin,
		CheckoutTime: &checkout,
		Status:       makeup.StatusPending,
	})
	require.NoError(t, err)

	approvalRecord, err := f.approvalRepo.Create(context.Background(), &approval.Record{
		RequestKind:        approval.KindMakeup,
		RequestID:          request.ID,
		ApproverRelationID: approverRelationID,
		Status:             approval.StatusPending,
	})
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, approvalRecord.ID, &approval.DecisionRequest{})

	require.NoError(t, err)
	assert.Equal(t, 1, f.attRepo.creates)
	created := f.attRepo.records[applicantRelationID+"|2025-03-03"]
	require.NotNil(t, created)
	assert.True(t, created.Corrected)
	assert.Equal(t, 9.0, created.WorkHours)
	assert.Equal(t, 1, f.quotaRepo.quota.Used)
}

func TestBatch_AggregatesOutcome(t *testing.T) {
	f := newFixture(t)
	ctx := approverContext(t)

	firstID := f.seedLeaveApproval(t)
	secondID := f.seedLeaveApproval(t)

	resp, err := f.svc.Batch(ctx, &approval.BatchRequest{
		ApprovalIDs: []string{firstID, secondID, "missing-id"},
		Action:      string(approval.BatchApprove),
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{firstID, secondID}, resp.Succeeded)
	require.Len(t, resp.Failed, 1)
	assert.Contains(t, resp.Failed, "missing-id")
}

func TestBatch_RejectRequiresComment(t *testing.T) {
	f := newFixture(t)
	ctx := approverContext(t)
	approvalID := f.seedLeaveApproval(t)

	_, err := f.svc.Batch(ctx, &approval.BatchRequest{
		ApprovalIDs: []string{approvalID},
		Action:      string(approval.BatchReject),
	})

	assert.ErrorIs(t, err, approval.ErrCommentRequired)
}
