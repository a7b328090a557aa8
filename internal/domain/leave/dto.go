package leave

import (
	"github.com/sanadhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EntitlementRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year,omitempty"`
}

func (r *EntitlementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Year != 0 && r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a valid year"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntitlementResponse struct {
	AnnualEntitlement    float64         `json:"annual_entitlement"`
	UsedDays             float64         `json:"used_days"`
	RemainingDays        float64         `json:"remaining_days"`
	LeaveSalaryDeduction decimal.Decimal `json:"leave_salary_deduction"`
}
