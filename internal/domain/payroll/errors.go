package payroll

import "errors"

var (
	ErrRunNotFound       = errors.New("payroll run not found")
	ErrRunAlreadyExists  = errors.New("payroll run already exists for this period")
	ErrRunNotCalculated  = errors.New("payroll run has not been calculated")
	ErrItemNotFound      = errors.New("payroll item not found")
	ErrNoActiveEmployees = errors.New("no active employees for calculation")
	ErrInvalidPeriod     = errors.New("invalid pay period")
)
