package wps

import "errors"

var (
	ErrSubmissionNotFound = errors.New("wps submission not found")
	ErrEmptyPayrollRun    = errors.New("payroll run has no items to export")
	ErrMissingBankDetails = errors.New("employee is missing IBAN or national id")
)
