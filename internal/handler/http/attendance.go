package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/attendance"
	"github.com/hongchuan-tech/ams-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	StartScanSession(w http.ResponseWriter, r *http.Request)
	Scan(w http.ResponseWriter, r *http.Request)
	ScanSessionState(w http.ResponseWriter, r *http.Request)
	ListOwn(w http.ResponseWriter, r *http.Request)
	ListCompany(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// StartScanSession implements AttendanceHandler.
func (a *AttendanceHandlerImpl) StartScanSession(w http.ResponseWriter, r *http.Request) {
	session, err := a.attendanceService.StartScanSession(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Scan session started", session)
}

// Scan implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req attendance.ScanRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Scan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	scanResp, err := a.attendanceService.Scan(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, scanResp)
}

// ScanSessionState implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ScanSessionState(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if sessionID == "" {
		response.BadRequest(w, "Session ID is required", nil)
		return
	}

	state, err := a.attendanceService.ScanSessionState(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, state)
}

// ListOwn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListOwn(w http.ResponseWriter, r *http.Request) {
	req := listRequestFromQuery(r)

	records, total, err := a.attendanceService.ListOwn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, &response.Meta{
		Limit:      req.Limit,
		Offset:     req.Offset,
		TotalItems: int64(total),
	})
}

// ListCompany implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListCompany(w http.ResponseWriter, r *http.Request) {
	req := listRequestFromQuery(r)
	req.RelationID = r.URL.Query().Get("relation_id")

	records, total, err := a.attendanceService.ListCompany(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, &response.Meta{
		Limit:      req.Limit,
		Offset:     req.Offset,
		TotalItems: int64(total),
	})
}

// Correct implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	var req attendance.CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Correct decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := a.attendanceService.Correct(r.Context(), recordID, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record corrected", record)
}

func listRequestFromQuery(r *http.Request) *attendance.ListRequest {
	req := &attendance.ListRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		req.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		req.Offset = offset
	}
	return req
}
