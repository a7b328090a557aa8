package wps

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	SubmissionStatusRejected  SubmissionStatus = "rejected"
)

// Submission - One WPS bank-submission record per exported payroll run.
// The payload is the simplified row set; the bank's binary file layout is
// produced downstream from the official specification.
type Submission struct {
	ID           string
	CompanyID    string
	PayrollRunID string
	FileName     string
	Status       SubmissionStatus
	Records      []Record
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Record - One salary transfer row.
type Record struct {
	EmployeeNumber string          `json:"employee_number"`
	EmployeeName   string          `json:"employee_name"`
	NationalID     string          `json:"national_id"`
	IBAN           string          `json:"iban"`
	NetSalary      decimal.Decimal `json:"net_salary"`
	PaymentDate    string          `json:"payment_date"`
}
