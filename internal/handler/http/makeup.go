package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hongchuan-tech/ams-backend-go/internal/domain/makeup"
	"github.com/hongchuan-tech/ams-backend-go/internal/handler/http/response"
)

type MakeupHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	ListOwn(w http.ResponseWriter, r *http.Request)
	Quota(w http.ResponseWriter, r *http.Request)
}

type MakeupHandlerImpl struct {
	makeupService makeup.Service
}

func NewMakeupHandler(makeupService makeup.Service) MakeupHandler {
	return &MakeupHandlerImpl{makeupService: makeupService}
}

// Apply implements MakeupHandler.
func (m *MakeupHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req makeup.ApplyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Makeup apply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := m.makeupService.Apply(r.Context(), &req)
	if err != nil {
		slog.Error("Makeup apply service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Makeup clock request submitted", request)
}

// ListOwn implements MakeupHandler.
func (m *MakeupHandlerImpl) ListOwn(w http.ResponseWriter, r *http.Request) {
	requests, err := m.makeupService.ListOwn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Quota implements MakeupHandler.
func (m *MakeupHandlerImpl) Quota(w http.ResponseWriter, r *http.Request) {
	quota, err := m.makeupService.Quota(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, quota)
}
