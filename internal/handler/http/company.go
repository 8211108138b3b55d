package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/company"
	"github.com/hongchuan-tech/ams-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	GetOwn(w http.ResponseWriter, r *http.Request)
	UpdateLocation(w http.ResponseWriter, r *http.Request)
	QRCode(w http.ResponseWriter, r *http.Request)
	ListMembers(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.Service
}

func NewCompanyHandler(companyService company.Service) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// GetOwn implements CompanyHandler.
func (c *CompanyHandlerImpl) GetOwn(w http.ResponseWriter, r *http.Request) {
	comp, err := c.companyService.GetOwn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, comp)
}

// UpdateLocation implements CompanyHandler.
func (c *CompanyHandlerImpl) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateLocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	comp, err := c.companyService.UpdateLocation(r.Context(), &req)
	if err != nil {
		slog.Error("UpdateLocation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company location updated", comp)
}

// QRCode implements CompanyHandler.
func (c *CompanyHandlerImpl) QRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := c.companyService.QRCode(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, qr)
}

// ListMembers implements CompanyHandler.
func (c *CompanyHandlerImpl) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := c.companyService.ListMembers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, members)
}
