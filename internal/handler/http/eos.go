package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/eos"
	"github.com/sanadhr/payroll-backend-go/internal/handler/http/response"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/validator"
)

type EOSHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	GetCalculation(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type eosHandlerImpl struct {
	eosService eos.EOSService
}

func NewEOSHandler(eosService eos.EOSService) EOSHandler {
	return &eosHandlerImpl{eosService: eosService}
}

func (h *eosHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req eos.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.eosService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "End-of-service benefit calculated", result)
}

func (h *eosHandlerImpl) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Calculation ID must be a valid UUID", nil)
		return
	}

	result, err := h.eosService.GetCalculation(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *eosHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.eosService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
