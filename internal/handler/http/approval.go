package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hongchuan-tech/ams-backend-go/internal/domain/approval"
	"github.com/hongchuan-tech/ams-backend-go/internal/handler/http/response"
)

type ApprovalHandler interface {
	Pending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Batch(w http.ResponseWriter, r *http.Request)
}

type ApprovalHandlerImpl struct {
	approvalService approval.Service
}

func NewApprovalHandler(approvalService approval.Service) ApprovalHandler {
	return &ApprovalHandlerImpl{approvalService: approvalService}
}

// Pending implements ApprovalHandler.
func (a *ApprovalHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	items, err := a.approvalService.Pending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// Approve implements ApprovalHandler.
func (a *ApprovalHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	approvalID := chi.URLParam(r, "id")
	if approvalID == "" {
		response.BadRequest(w, "Approval ID is required", nil)
		return
	}

	req, ok := decodeDecision(w, r)
	if !ok {
		return
	}

	decision, err := a.approvalService.Approve(r.Context(), approvalID, req)
	if err != nil {
		slog.Error("Approve service error", "error", err, "approval_id", approvalID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request approved", decision)
}

// Reject implements ApprovalHandler.
func (a *ApprovalHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	approvalID := chi.URLParam(r, "id")
	if approvalID == "" {
		response.BadRequest(w, "Approval ID is required", nil)
		return
	}

	req, ok := decodeDecision(w, r)
	if !ok {
		return
	}

	decision, err := a.approvalService.Reject(r.Context(), approvalID, req)
	if err != nil {
		slog.Error("Reject service error", "error", err, "approval_id", approvalID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request rejected", decision)
}

// Batch implements ApprovalHandler.
func (a *ApprovalHandlerImpl) Batch(w http.ResponseWriter, r *http.Request) {
	var req approval.BatchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Batch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := a.approvalService.Batch(r.Context(), &req)
	if err != nil {
		slog.Error("Batch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// decodeDecision reads an optional decision body. An empty body is a
// decision with no comment.
func decodeDecision(w http.ResponseWriter, r *http.Request) (*approval.DecisionRequest, bool) {
	var req approval.DecisionRequest
	if r.Body == nil || r.ContentLength == 0 {
		return &req, true
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decision decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return nil, false
	}
	return &req, true
}
