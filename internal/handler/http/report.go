package http

import (
	"net/http"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/report"
	"github.com/hongchuan-tech/ams-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
	AnomalyList(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// AttendanceSummary implements ReportHandler.
func (h *ReportHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	req := &report.SummaryRequest{Month: r.URL.Query().Get("month")}

	rows, err := h.reportService.AttendanceSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// AnomalyList implements ReportHandler.
func (h *ReportHandlerImpl) AnomalyList(w http.ResponseWriter, r *http.Request) {
	req := &report.SummaryRequest{Month: r.URL.Query().Get("month")}

	rows, err := h.reportService.AnomalyList(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}
