package leave

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// LeaveType - Master leave type; unpaid types reduce net pay.
type LeaveType struct {
	ID     string
	Code   string
	Name   string
	IsPaid bool
}

// Request - An employee leave request.
type Request struct {
	ID            string
	EmployeeID    string
	LeaveTypeID   string
	StartDate     time.Time
	EndDate       time.Time
	DaysRequested float64
	Status        RequestStatus

	// Joined fields
	LeaveType LeaveType
}

// Balance - Per-year leave balance bookkeeping.
type Balance struct {
	ID         string
	EmployeeID string
	Year       int
	UsedDays   float64
}
