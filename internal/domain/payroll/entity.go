package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus state machine: draft -> calculated -> (approved/submitted,
// handled by downstream HR workflows).
type RunStatus string

const (
	RunStatusDraft      RunStatus = "draft"
	RunStatusCalculated RunStatus = "calculated"
	RunStatusApproved   RunStatus = "approved"
	RunStatusSubmitted  RunStatus = "submitted"
)

// Run - One payroll run per (company, period).
type Run struct {
	ID              string
	CompanyID       string
	RunName         string
	PayPeriodStart  time.Time
	PayPeriodEnd    time.Time
	PayDate         time.Time
	IsRamadanPeriod bool
	Status          RunStatus
	TotalEmployees  int
	TotalGrossPay   decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNetPay     decimal.Decimal
	CalculationLog  *CalculationLog
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CalculationLog - Audit summary stored on the run once calculated.
type CalculationLog struct {
	CalculatedAt    time.Time       `json:"calculated_at"`
	EmployeeCount   int             `json:"employee_count"`
	TotalGrossPay   decimal.Decimal `json:"total_gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
}

// Item - Computed payroll breakdown for one employee in a run.
type Item struct {
	ID                string
	PayrollRunID      string
	EmployeeID        string
	BasicSalary       decimal.Decimal
	TotalAllowances   decimal.Decimal
	OvertimeHours     float64
	OvertimeAmount    decimal.Decimal
	RamadanAdjustment decimal.Decimal
	GrossPay          decimal.Decimal
	GOSIEmployee      decimal.Decimal
	GOSIEmployer      decimal.Decimal
	LoanDeductions    decimal.Decimal
	LeaveDeductions   decimal.Decimal
	TotalDeductions   decimal.Decimal
	NetPay            decimal.Decimal
	WorkingDays       int
	WorkingHours      float64
	Details           *ItemDetails
	CreatedAt         time.Time

	// Joined employee fields for WPS export and listings
	EmployeeNumber *string
	EmployeeName   *string
	NationalID     *string
	IBAN           *string
}

// ItemDetails - Snapshot of every sub-calculation, persisted for audit.
type ItemDetails struct {
	Allowances     []AllowanceLine `json:"allowances"`
	Overtime       Overtime        `json:"overtime"`
	GOSIRateSource string          `json:"gosi_rate_source"`
	CalculatedAt   time.Time       `json:"calculated_at"`
}

// AllowanceLine - One computed allowance component.
type AllowanceLine struct {
	Code        string          `json:"allowance_code"`
	Name        string          `json:"allowance_name"`
	Amount      decimal.Decimal `json:"amount"`
	IsTaxable   bool            `json:"is_taxable"`
	AffectsEOS  bool            `json:"affects_eos"`
	AffectsGOSI bool            `json:"affects_gosi"`
}

// Overtime - Regular/overtime hour split and the resulting pay.
type Overtime struct {
	RegularHours   float64         `json:"regular_hours"`
	OvertimeHours  float64         `json:"overtime_hours"`
	OvertimeRate   decimal.Decimal `json:"overtime_rate"`
	OvertimeAmount decimal.Decimal `json:"overtime_amount"`
}

// RamadanAdjustment - Per-employee working-hour adjustment for the
// ramadan-adjustments operation.
type RamadanAdjustment struct {
	EmployeeID       string          `json:"employee_id"`
	RegularHours     float64         `json:"regular_hours"`
	RamadanHours     float64         `json:"ramadan_hours"`
	AdjustmentAmount decimal.Decimal `json:"adjustment_amount"`
	EffectiveFrom    string          `json:"effective_from"`
	EffectiveTo      string          `json:"effective_to"`
}
