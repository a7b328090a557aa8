package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/wps"
	"github.com/sanadhr/payroll-backend-go/internal/handler/http/response"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/validator"
)

type WPSHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	GetSubmission(w http.ResponseWriter, r *http.Request)
}

type wpsHandlerImpl struct {
	wpsService wps.WPSService
}

func NewWPSHandler(wpsService wps.WPSService) WPSHandler {
	return &wpsHandlerImpl{wpsService: wpsService}
}

func (h *wpsHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req wps.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.wpsService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "WPS file generated", result)
}

func (h *wpsHandlerImpl) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Submission ID must be a valid UUID", nil)
		return
	}

	result, err := h.wpsService.GetSubmission(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
