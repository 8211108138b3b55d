package leave

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/approval"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/leave"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	applicantRelationID = "rel-emp-001"
	managerRelationID   = "rel-mgr-001"
)

type fakeLeaveRepo struct {
	records map[string]*leave.Record
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{records: make(map[string]*leave.Record)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, record *leave.Record) (*leave.Record, error) {
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now()
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
	var records []*leave.Record
	for _, record := range f.records {
		if record.RelationID == relationID {
			records = append(records, record)
		}
	}
	return records, nil
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
	balances map[string]*leave.Balance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[string]*leave.Balance)}
}

func (f *fakeBalanceRepo) seed(balance *leave.Balance) {
	balance.ID = uuid.NewString()
	f.balances[balance.ID] = balance
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
	var balances []*leave.Balance
	for _, balance := range f.balances {
		if balance.EmployeeID == employeeID && balance.Year == year {
			balances = append(balances, balance)
		}
	}
	return balances, nil
}

func (f *fakeBalanceRepo) AddUsedHours(ctx context.Context, id string, hours float64) error {
	balance, ok := f.balances[id]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	balance.UsedHours += hours
	return nil
}

type fakeRelationRepo struct {
	relations map[string]*company.Relation
}

func newFakeRelationRepo() *fakeRelationRepo {
	return &fakeRelationRepo{relations: make(map[string]*company.Relation)}
}

func (f *fakeRelationRepo) GetByID(ctx context.Context, id string) (*company.Relation, error) {
	relation, ok := f.relations[id]
	if !ok {
		return nil, company.ErrRelationNotFound
	}
	return relation, nil
}

func (f *fakeRelationRepo) GetActiveByEmployeeID(ctx context.Context, employeeID string) (*company.Relation, error) {
	for _, relation := range f.relations {
		if relation.EmployeeID == employeeID && relation.Active {
			return relation, nil
		}
	}
	return nil, company.ErrRelationNotFound
}

func (f *fakeRelationRepo) ListByCompany(ctx context.Context, companyID string) ([]*company.Relation, error) {
	return nil, nil
}

func (f *fakeRelationRepo) ListByManager(ctx context.Context, managerRelationID string) ([]*company.Relation, error) {
	return nil, nil
}

type fakeApprovalRepo struct {
	created []*approval.Record
}

func (f *fakeApprovalRepo) Create(ctx context.Context, record *approval.Record) (*approval.Record, error) {
	record.ID = uuid.NewString()
	f.created = append(f.created, record)
	return record, nil
}

func (f *fakeApprovalRepo) GetByID(ctx context.Context, id string) (*approval.Record, error) {
	return nil, approval.ErrRecordNotFound
}

func (f *fakeApprovalRepo) ListPendingByApprover(ctx context.Context, approverRelationID string) ([]*approval.Record, error) {
	return nil, nil
}

func (f *fakeApprovalRepo) Decide(ctx context.Context, record *approval.Record) (*approval.Record, error) {
	return record, nil
}

type fakeNotificationSvc struct {
	notified []string
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
	f.notified = append(f.notified, recipientID)
	return nil
}

type fixture struct {
	leaveRepo    *fakeLeaveRepo
	balanceRepo  *fakeBalanceRepo
	relationRepo *fakeRelationRepo
	approvalRepo *fakeApprovalRepo
	notifySvc    *fakeNotificationSvc
	svc          leave.Service
}

func newFixture() *fixture {
	f := &fixture{
		leaveRepo:    newFakeLeaveRepo(),
		balanceRepo:  newFakeBalanceRepo(),
		relationRepo: newFakeRelationRepo(),
		approvalRepo: &fakeApprovalRepo{},
		notifySvc:    &fakeNotificationSvc{},
	}

	managerID := managerRelationID
	f.relationRepo.relations[applicantRelationID] = &company.Relation{
		ID:         applicantRelationID,
		EmployeeID: "E1001",
		CompanyID:  "comp-001",
		ManagerID:  &managerID,
		Active:     true,
	}
	f.relationRepo.relations[managerRelationID] = &company.Relation{
		ID:         managerRelationID,
		EmployeeID: "E2001",
		CompanyID:  "comp-001",
		Active:     true,
	}

	f.svc = NewLeaveService(f.leaveRepo, f.balanceRepo, f.relationRepo, f.approvalRepo, f.notifySvc, time.UTC)
	return f
}

func applicantContext(t *testing.T) context.Context {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{
		"user_id":     "E1001",
		"relation_id": applicantRelationID,
		"company_id":  "comp-001",
		"role":        "employee",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestApply_FilesPendingRecordAndRoutesToManager(t *testing.T) {
	f := newFixture()
	f.balanceRepo.seed(&leave.Balance{
		EmployeeID: "E1001",
		Year:       2025,
		LeaveType:  leave.TypeAnnual,
		TotalHours: 80,
		UsedHours:  0,
	})

	resp, err := f.svc.Apply(applicantContext(t), &leave.ApplyRequest{
		LeaveType:   "annual",
		StartTime:   "2025-03-03 08:00:00",
		EndTime:     "2025-03-03 17:00:00",
		LeaveReason: "Family visit",
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.InDelta(t, 8.0, resp.LeaveHours, 0.001)

	require.Len(t, f.approvalRepo.created, 1)
	assert.Equal(t, approval.KindLeave, f.approvalRepo.created[0].RequestKind)
	assert.Equal(t, managerRelationID, f.approvalRepo.created[0].ApproverRelationID)
	assert.Equal(t, []string{"E2001"}, f.notifySvc.notified)
}

func TestApply_SpanWithinOneDayKeepsRawHours(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Apply(applicantContext(t), &leave.ApplyRequest{
		LeaveType:   "personal",
		StartTime:   "2025-03-03 08:00:00",
		EndTime:     "2025-03-03 12:00:00",
		LeaveReason: "Errand",
	})
	require.NoError(t, err)

	assert.InDelta(t, 4.0, resp.LeaveHours, 0.001)
}

func TestApply_InsufficientBalanceRejected(t *testing.T) {
	f := newFixture()
	f.balanceRepo.seed(&leave.Balance{
		EmployeeID: "E1001",
		Year:       2025,
		LeaveType:  leave.TypeAnnual,
		TotalHours: 40,
		UsedHours:  36,
	})

	_, err := f.svc.Apply(applicantContext(t), &leave.ApplyRequest{
		LeaveType:   "annual",
		StartTime:   "2025-03-03 08:00:00",
		EndTime:     "2025-03-03 17:00:00",
		LeaveReason: "Family visit",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	assert.Empty(t, f.leaveRepo.records)
}

func TestApply_NoBalanceSeededPassesThrough(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Apply(applicantContext(t), &leave.ApplyRequest{
		LeaveType:   "bereavement",
		StartTime:   "2025-03-03 08:00:00",
		EndTime:     "2025-03-03 17:00:00",
		LeaveReason: "Bereavement",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
}

func TestApply_ZeroSpanRejected(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Apply(applicantContext(t), &leave.ApplyRequest{
		LeaveType:   "annual",
		StartTime:   "2025-03-03 08:00:00",
		EndTime:     "2025-03-03 08:00:00",
		LeaveReason: "Nothing",
	})
	assert.ErrorIs(t, err, leave.ErrNonPositiveHours)
}

func TestBalances_ReportsRemaining(t *testing.T) {
	f := newFixture()
	f.balanceRepo.seed(&leave.Balance{
		EmployeeID: "E1001",
		Year:       time.Now().UTC().Year(),
		LeaveType:  leave.TypeAnnual,
		TotalHours: 80,
		UsedHours:  12,
	})

	balances, err := f.svc.Balances(applicantContext(t))
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.InDelta(t, 68.0, balances[0].RemainingHours, 0.001)
}
