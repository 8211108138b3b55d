package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/overtime"
	"github.com/hongchuan-tech/ams-backend-go/internal/handler/http/response"
)

type OvertimeHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	ListOwn(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type OvertimeHandlerImpl struct {
	overtimeService overtime.Service
}

func NewOvertimeHandler(overtimeService overtime.Service) OvertimeHandler {
	return &OvertimeHandlerImpl{overtimeService: overtimeService}
}

// Apply implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req overtime.ApplyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Overtime apply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := o.overtimeService.Apply(r.Context(), &req)
	if err != nil {
		slog.Error("Overtime apply service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted", record)
}

// ListOwn implements OvertimeHandler.
func (o *OvertimeHandlerImpl) ListOwn(w http.ResponseWriter, r *http.Request) {
	records, err := o.overtimeService.ListOwn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Cancel implements OvertimeHandler.
func (o *OvertimeHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")
	if recordID == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	record, err := o.overtimeService.Cancel(r.Context(), recordID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request cancelled", record)
}
