package eos

import (
	"github.com/sanadhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateRequest struct {
	EmployeeID      string `json:"employee_id"`
	CalculationDate string `json:"calculation_date"`
	Reason          string `json:"reason"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.CalculationDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "calculation_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if !Reason(r.Reason).Valid() {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "must be one of resignation, termination, retirement, death"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CalculationResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	CalculationDate    string          `json:"calculation_date"`
	ServiceYears       float64         `json:"service_years"`
	ServiceMonths      float64         `json:"service_months"`
	TotalServiceDays   int             `json:"total_service_days"`
	BasicSalary        decimal.Decimal `json:"basic_salary"`
	AllowancesIncluded decimal.Decimal `json:"allowances_included"`
	CalculationBase    decimal.Decimal `json:"calculation_base"`
	EOSAmount          decimal.Decimal `json:"eos_amount"`
	Reason             string          `json:"reason"`
}
