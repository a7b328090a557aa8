package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                 string
	CompanyID          string
	EmployeeNumber     string
	FirstName          string
	LastName           string
	NationalID         string
	IBAN               string
	BasicSalary        decimal.Decimal
	HireDate           time.Time
	IsSaudi            bool
	WorkingHoursPerDay float64
	WorkingDaysPerWeek float64
	EmploymentStatus   EmploymentStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// FullName joins first and last name for display and WPS rows.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
