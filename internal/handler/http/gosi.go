package http

import (
	"encoding/json"
	"net/http"

	"github.com/sanadhr/payroll-backend-go/internal/domain/gosi"
	"github.com/sanadhr/payroll-backend-go/internal/handler/http/response"
)

type GOSIHandler interface {
	Sync(w http.ResponseWriter, r *http.Request)
}

type gosiHandlerImpl struct {
	gosiService gosi.GOSIService
}

func NewGOSIHandler(gosiService gosi.GOSIService) GOSIHandler {
	return &gosiHandlerImpl{gosiService: gosiService}
}

func (h *gosiHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	var req gosi.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.gosiService.Sync(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
