package response

import (
	"errors"
	"net/http"

	"github.com/sanadhr/payroll-backend-go/internal/domain/auth"
	"github.com/sanadhr/payroll-backend-go/internal/domain/employee"
	"github.com/sanadhr/payroll-backend-go/internal/domain/eos"
	"github.com/sanadhr/payroll-backend-go/internal/domain/gosi"
	"github.com/sanadhr/payroll-backend-go/internal/domain/payroll"
	"github.com/sanadhr/payroll-backend-go/internal/domain/wps"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrUnauthorized):
		Unauthorized(w, "Missing or invalid credentials")
	case errors.Is(err, auth.ErrCompanyForbidden):
		Forbidden(w, "Company access forbidden")

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRunAlreadyExists):
		Conflict(w, "A payroll run already exists for this period")
	case errors.Is(err, payroll.ErrRunNotCalculated):
		Conflict(w, "Payroll run has not been calculated yet")
	case errors.Is(err, payroll.ErrItemNotFound):
		NotFound(w, "Payroll item not found")
	case errors.Is(err, payroll.ErrNoActiveEmployees):
		BadRequest(w, "No active employees to calculate", nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid pay period", nil)

	// End of service
	case errors.Is(err, eos.ErrCalculationNotFound):
		NotFound(w, "End-of-service calculation not found")

	// GOSI
	case errors.Is(err, gosi.ErrSyncLogNotFound):
		NotFound(w, "GOSI sync log not found")

	// WPS
	case errors.Is(err, wps.ErrSubmissionNotFound):
		NotFound(w, "WPS submission not found")
	case errors.Is(err, wps.ErrEmptyPayrollRun):
		BadRequest(w, "Payroll run has no items to export", nil)
	case errors.Is(err, wps.ErrMissingBankDetails):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
