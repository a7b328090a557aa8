package payroll

import (
	"github.com/sanadhr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CALCULATE PAYROLL ==========

type CalculateRequest struct {
	CompanyID       string   `json:"company_id"`
	PayPeriodStart  string   `json:"pay_period_start"`
	PayPeriodEnd    string   `json:"pay_period_end"`
	PayDate         string   `json:"pay_date"`
	IsRamadanPeriod bool     `json:"is_ramadan_period,omitempty"`
	EmployeeIDs     []string `json:"employee_ids,omitempty"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{Field: "company_id", Message: "is required"})
	}
	start, okStart := validator.IsValidDate(r.PayPeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "pay_period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.PayPeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "pay_period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.PayDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && !end.After(start) {
		errs = append(errs, validator.ValidationError{Field: "pay_period_end", Message: "must be after pay_period_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunSummaryResponse struct {
	PayrollRunID string     `json:"payroll_run_id"`
	Summary      RunSummary `json:"summary"`
}

type RunSummary struct {
	TotalEmployees  int             `json:"total_employees"`
	TotalGrossPay   decimal.Decimal `json:"total_gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
}

// ========== OVERTIME ==========

type OvertimeRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *OvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RAMADAN ADJUSTMENTS ==========

type RamadanAdjustmentsRequest struct {
	CompanyID        string `json:"company_id"`
	RamadanStartDate string `json:"ramadan_start_date"`
	RamadanEndDate   string `json:"ramadan_end_date"`
}

func (r *RamadanAdjustmentsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{Field: "company_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.RamadanStartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "ramadan_start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.RamadanEndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "ramadan_end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RamadanAdjustmentsResponse struct {
	Adjustments    []RamadanAdjustment `json:"ramadan_adjustments"`
	TotalEmployees int                 `json:"total_employees"`
}

// ========== RUN / ITEM READS ==========

type RunResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	RunName         string          `json:"run_name"`
	PayPeriodStart  string          `json:"pay_period_start"`
	PayPeriodEnd    string          `json:"pay_period_end"`
	PayDate         string          `json:"pay_date"`
	IsRamadanPeriod bool            `json:"is_ramadan_period"`
	Status          string          `json:"status"`
	TotalEmployees  int             `json:"total_employees"`
	TotalGrossPay   decimal.Decimal `json:"total_gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
	CreatedAt       string          `json:"created_at"`
}

type ItemResponse struct {
	ID                string          `json:"id"`
	EmployeeID        string          `json:"employee_id"`
	EmployeeNumber    *string         `json:"employee_number,omitempty"`
	EmployeeName      *string         `json:"employee_name,omitempty"`
	BasicSalary       decimal.Decimal `json:"basic_salary"`
	TotalAllowances   decimal.Decimal `json:"total_allowances"`
	OvertimeHours     float64         `json:"overtime_hours"`
	OvertimeAmount    decimal.Decimal `json:"overtime_amount"`
	RamadanAdjustment decimal.Decimal `json:"ramadan_adjustment"`
	GrossPay          decimal.Decimal `json:"gross_pay"`
	GOSIEmployee      decimal.Decimal `json:"gosi_employee"`
	GOSIEmployer      decimal.Decimal `json:"gosi_employer"`
	LoanDeductions    decimal.Decimal `json:"loan_deductions"`
	LeaveDeductions   decimal.Decimal `json:"other_deductions"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	NetPay            decimal.Decimal `json:"net_pay"`
	WorkingDays       int             `json:"working_days"`
	WorkingHours      float64         `json:"working_hours"`
}

type RunFilter struct {
	Status *string
	Page   int
	Limit  int
}

type ListRunsResponse struct {
	Data       []RunResponse `json:"data"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}
