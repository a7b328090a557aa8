package allowance

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationType enum
type CalculationType string

const (
	CalculationTypeFixed      CalculationType = "fixed"
	CalculationTypePercentage CalculationType = "percentage"
	CalculationTypeFormula    CalculationType = "formula"
)

// Definition - Master allowance definition shared across employees.
// Percentage definitions must carry a MaxAmount cap.
type Definition struct {
	ID              string
	CompanyID       string
	Code            string
	NameEN          string
	NameAR          string
	CalculationType CalculationType
	Percentage      decimal.Decimal
	DefaultAmount   decimal.Decimal
	MaxAmount       *decimal.Decimal
	IsTaxable       bool
	AffectsEOS      bool
	AffectsGOSI     bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Assignment - Allowance assigned to an employee with an effective range.
type Assignment struct {
	ID            string
	EmployeeID    string
	DefinitionID  string
	Amount        decimal.Decimal
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined definition fields
	Definition Definition
}

// ActiveOn reports whether the assignment is effective on the given date.
func (a Assignment) ActiveOn(date time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.EffectiveFrom.After(date) {
		return false
	}
	if a.EffectiveTo != nil && a.EffectiveTo.Before(date) {
		return false
	}
	return true
}
