package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusActive LoanStatus = "active"
	LoanStatusClosed LoanStatus = "closed"
)

// Loan - Employee loan repaid through monthly payroll deductions.
type Loan struct {
	ID               string
	EmployeeID       string
	LoanType         string
	MonthlyDeduction decimal.Decimal
	RemainingAmount  decimal.Decimal
	Status           LoanStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
