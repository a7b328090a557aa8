package eos

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reason selects the severance formula branch. Resignation pays half a
// month per year for the first five years and a full month per year after;
// every other reason pays a full month per year of service.
type Reason string

const (
	ReasonResignation Reason = "resignation"
	ReasonTermination Reason = "termination"
	ReasonRetirement  Reason = "retirement"
	ReasonDeath       Reason = "death"
)

func (r Reason) Valid() bool {
	switch r {
	case ReasonResignation, ReasonTermination, ReasonRetirement, ReasonDeath:
		return true
	}
	return false
}

// Calculation - Persisted end-of-service settlement with full audit detail.
type Calculation struct {
	ID                 string
	EmployeeID         string
	CalculationDate    time.Time
	ServiceYears       float64
	ServiceMonths      float64
	TotalServiceDays   int
	BasicSalary        decimal.Decimal
	AllowancesIncluded decimal.Decimal
	CalculationBase    decimal.Decimal
	EOSAmount          decimal.Decimal
	Reason             Reason
	Details            *Details
	CreatedAt          time.Time
}

// Details - Audit breakdown stored alongside the computed amount.
type Details struct {
	HireDate            string          `json:"hire_date"`
	CalculationMethod   string          `json:"calculation_method"`
	AllowancesBreakdown []AllowanceLine `json:"allowances_breakdown"`
}

// AllowanceLine - An allowance that contributed to the EOS base.
type AllowanceLine struct {
	Code   string          `json:"allowance_code"`
	Name   string          `json:"allowance_name"`
	Amount decimal.Decimal `json:"amount"`
}
