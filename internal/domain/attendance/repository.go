package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	GetByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error)

	// GetByEmployeeIDsAndRange bulk-fetches timesheet rows for a set of
	// employees, keyed by employee id.
	GetByEmployeeIDsAndRange(ctx context.Context, employeeIDs []string, start, end time.Time) (map[string][]Record, error)
}
