package loan

import "context"

type LoanRepository interface {
	GetActiveByEmployeeID(ctx context.Context, employeeID string) ([]Loan, error)

	// GetActiveByEmployeeIDs bulk-fetches active loans keyed by employee id.
	GetActiveByEmployeeIDs(ctx context.Context, employeeIDs []string) (map[string][]Loan, error)
}
