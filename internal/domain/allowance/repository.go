package allowance

import (
	"context"
	"time"
)

// AllowanceRepository defines data access for allowance definitions and
// their per-employee assignments.
type AllowanceRepository interface {
	// GetActiveAssignments returns assignments joined to their definitions
	// that are effective on asOf for a single employee.
	GetActiveAssignments(ctx context.Context, employeeID string, asOf time.Time) ([]Assignment, error)

	// GetActiveAssignmentsByEmployeeIDs bulk-fetches effective assignments
	// for a set of employees, keyed by employee id.
	GetActiveAssignmentsByEmployeeIDs(ctx context.Context, employeeIDs []string, asOf time.Time) (map[string][]Assignment, error)
}
