package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	// GetApprovedByEmployeeAndRange returns approved requests that fall
	// inside the pay period, joined to their leave types.
	GetApprovedByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Request, error)

	// GetApprovedByEmployeeIDsAndRange bulk-fetches approved requests keyed
	// by employee id.
	GetApprovedByEmployeeIDsAndRange(ctx context.Context, employeeIDs []string, start, end time.Time) (map[string][]Request, error)

	GetBalances(ctx context.Context, employeeID string, year int) ([]Balance, error)
}
