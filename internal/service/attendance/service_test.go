package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/attendance"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/geo"
	"github.com/hongchuan-tech/ams-backend-go/internal/pkg/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRelationID = "rel-001"
	testCompanyID  = "comp-001"
)

// Company anchor used across the reconciler tests.
var testAnchor = geo.Point{Latitude: 25.0330, Longitude: 121.5654}

type fakeAttendanceRepo struct {
	records     map[string]*attendance.Record
	getErr      error
	createCalls int
	patchCalls  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Record)}
}

func (f *fakeAttendanceRepo) key(relationID, date string) string {
	return relationID + "|" + date
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record *attendance.Record) (*attendance.Record, error) {
	f.createCalls++
	record.ID = uuid.NewString()
	f.records[f.key(record.RelationID, record.Date)] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByRelationAndDate(ctx context.Context, relationID string, date string) (*attendance.Record, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	record, ok := f.records[f.key(relationID, date)]
	if !ok {
		return nil, attendance.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeAttendanceRepo) PatchCheckout(ctx context.Context, record *attendance.Record) (*attendance.Record, error) {
	f.patchCalls++
	f.records[f.key(record.RelationID, record.Date)] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (*attendance.Record, error) {
	for _, record := range f.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) List(ctx context.Context, req *attendance.ListRequest) ([]*attendance.Record, int, error) {
	var out []*attendance.Record
	for _, record := range f.records {
		if record.RelationID == req.RelationID {
			out = append(out, record)
		}
	}
	return out, len(out), nil
}

func (f *fakeAttendanceRepo) ListByCompany(ctx context.Context, companyID string, req *attendance.ListRequest) ([]*attendance.Record, int, error) {
	var out []*attendance.Record
	for _, record := range f.records {
		out = append(out, record)
	}
	return out, len(out), nil
}

func (f *fakeAttendanceRepo) UpdateTimes(ctx context.Context, id string, record *attendance.Record) (*attendance.Record, error) {
	return record, nil
}

func (f *fakeAttendanceRepo) ListOpenBefore(ctx context.Context, date string) ([]*attendance.Record, error) {
	return nil, nil
}

type fakeCompanyRepo struct {
	company *company.Company
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*company.Company, error) {
	if f.company == nil || f.company.ID != id {
		return nil, company.ErrCompanyNotFound
	}
	return f.company, nil
}

func (f *fakeCompanyRepo) UpdateLocation(ctx context.Context, id string, latitude float64, longitude float64) (*company.Company, error) {
	return f.company, nil
}

func authedContext(t *testing.T) context.Context {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{
		"user_id":     "E1001",
		"relation_id": testRelationID,
		"company_id":  testCompanyID,
		"role":        "employee",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(t *testing.T) (attendance.Service, *fakeAttendanceRepo, *scan.Manager) {
	t.Helper()
	repo := newFakeAttendanceRepo()
	companyRepo := &fakeCompanyRepo{company: &company.Company{
		ID:       testCompanyID,
		Name:     "Hongchuan Tech",
		Location: testAnchor,
	}}
	scans := scan.NewManager()
	svc := NewAttendanceService(repo, companyRepo, scans, time.UTC)
	return svc, repo, scans
}

func startSession(t *testing.T, svc attendance.Service, ctx context.Context) string {
	t.Helper()
	session, err := svc.StartScanSession(ctx)
	require.NoError(t, err)
	return session.SessionID
}

func scanRequest(sessionID string, mode attendance.Mode) *attendance.ScanRequest {
	position := testAnchor
	return &attendance.ScanRequest{
		SessionID: sessionID,
		Mode:      mode,
		Payload:   "25.0330, 121.5654",
		Position:  &position,
	}
}

func TestScan_ClockIn_CreatesSingleRecord(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)

	resp, err := svc.Scan(ctx, scanRequest(startSession(t, svc, ctx), attendance.ModeIn))

	require.NoError(t, err)
	assert.Equal(t, string(scan.StateSuccess), resp.State)
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, 0, repo.patchCalls)
	require.NotNil(t, resp.Record)
	assert.Equal(t, float64(0), resp.Record.WorkHours)
	assert.Equal(t, resp.Record.CheckinTime, resp.Record.CheckoutTime)
	assert.Equal(t, resp.Record.Date, resp.Record.CheckinTime[:10])
	assert.Equal(t, testAnchor.LocationString(), resp.Record.CheckinLocation)
	assert.Equal(t, resp.Record.CheckinLocation, resp.Record.CheckoutLocation)
}

func TestScan_ClockOut_PatchesOpenRecord(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)

	// Seed an open record checked in two hours ago.
	now := time.Now().UTC()
	checkin := now.Add(-2 * time.Hour)
	repo.records[repo.key(testRelationID, now.Format("2006-01-02"))] = &attendance.Record{
		ID:           uuid.NewString(),
		RelationID:   testRelationID,
		Date:         now.Format("2006-01-02"),
		CheckinTime:  checkin,
		CheckoutTime: checkin,
	}

	resp, err := svc.Scan(ctx, scanRequest(startSession(t, svc, ctx), attendance.ModeOut))

	require.NoError(t, err)
	assert.Equal(t, string(scan.StateSuccess), resp.State)
	assert.Equal(t, 0, repo.createCalls)
	assert.Equal(t, 1, repo.patchCalls)
	require.NotNil(t, resp.Record)
	assert.InDelta(t, 2.0, resp.Record.WorkHours, 0.01)
}

func TestScan_ClockOut_WithoutCheckIn_NoWrites(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)

	resp, err := svc.Scan(ctx, scanRequest(startSession(t, svc, ctx), attendance.ModeOut))

	require.NoError(t, err)
	assert.Equal(t, string(scan.StateRejected), resp.State)
	assert.Equal(t, attendance.ErrNoCheckInRecord.Error(), resp.Message)
	assert.Equal(t, 0, repo.createCalls)
	assert.Equal(t, 0, repo.patchCalls)
}

func TestScan_ClockOut_RepoFailure_NotReportedAsMissingRecord(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)
	repo.getErr = errors.New("connection reset by peer")

	resp, err := svc.Scan(ctx, scanRequest(startSession(t, svc, ctx), attendance.ModeOut))

	require.NoError(t, err)
	assert.Equal(t, string(scan.StateRejected), resp.State)
	assert.NotEqual(t, attendance.ErrNoCheckInRecord.Error(), resp.Message)
	assert.Contains(t, resp.Message, "connection reset by peer")
	assert.Equal(t, 0, repo.patchCalls)
}

func TestScan_DuplicateClockIn_Rejected(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)

	_, err := svc.Scan(ctx, scanRequest(startSession(t, svc, ctx), attendance.ModeIn))
	require.NoError(t, err)

	resp, err := svc.Scan(ctx, scanRequest(startSession(t, svc, ctx), attendance.ModeIn))

	require.NoError(t, err)
	assert.Equal(t, string(scan.StateRejected), resp.State)
	assert.Equal(t, attendance.ErrAlreadyCheckedIn.Error(), resp.Message)
	assert.Equal(t, 1, repo.createCalls)
}

func TestScan_OutsideRadius_NoWrites(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)

	// Roughly 10 km north of the anchor.
	req := scanRequest(startSession(t, svc, ctx), attendance.ModeIn)
	req.Position = &geo.Point{Latitude: 25.1230, Longitude: 121.5654}

	resp, err := svc.Scan(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, string(scan.StateRejected), resp.State)
	assert.Equal(t, "business", resp.ErrorClass)
	assert.Equal(t, attendance.ErrOutsideAllowedRadius.Error(), resp.Message)
	assert.Equal(t, 0, repo.createCalls)
	assert.Equal(t, 0, repo.patchCalls)
}

func TestScan_UnregisteredPoint_Rejected(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)

	req := scanRequest(startSession(t, svc, ctx), attendance.ModeIn)
	req.Payload = "24.0000, 120.0000"
	req.Position = &geo.Point{Latitude: 24.0000, Longitude: 120.0000}

	resp, err := svc.Scan(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, string(scan.StateRejected), resp.State)
	assert.Equal(t, attendance.ErrUnknownLocation.Error(), resp.Message)
	assert.Equal(t, 0, repo.createCalls)
}

func TestScan_PositionError_EnvironmentRejection(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)

	req := scanRequest(startSession(t, svc, ctx), attendance.ModeIn)
	req.Position = nil
	req.PositionError = string(geo.PositionPermissionDenied)

	resp, err := svc.Scan(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, string(scan.StateRejected), resp.State)
	assert.Equal(t, "environment", resp.ErrorClass)
	assert.Equal(t, 0, repo.createCalls)
}

func TestScan_MalformedPayload_ValidationRejection(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)

	req := scanRequest(startSession(t, svc, ctx), attendance.ModeIn)
	req.Payload = "https://example.com/not-a-coordinate"

	resp, err := svc.Scan(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, string(scan.StateRejected), resp.State)
	assert.Equal(t, "validation", resp.ErrorClass)
	assert.Equal(t, 0, repo.createCalls)
}

func TestScan_SecondDecodeSameSession_NotHonored(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := authedContext(t)

	sessionID := startSession(t, svc, ctx)

	_, err := svc.Scan(ctx, scanRequest(sessionID, attendance.ModeIn))
	require.NoError(t, err)
	assert.Equal(t, 1, repo.createCalls)

	// The camera callback fires again with the same session.
	_, err = svc.Scan(ctx, scanRequest(sessionID, attendance.ModeIn))

	assert.Error(t, err)
	assert.Equal(t, 1, repo.createCalls)
}
