package http

import (
	"encoding/json"
	"net/http"

	"github.com/sanadhr/payroll-backend-go/internal/domain/leave"
	"github.com/sanadhr/payroll-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Entitlement(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func (h *leaveHandlerImpl) Entitlement(w http.ResponseWriter, r *http.Request) {
	var req leave.EntitlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.leaveService.Entitlement(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
