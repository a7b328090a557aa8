package payroll

import "context"

// PayrollRepository defines data access for payroll runs and items.
// All read methods take companyID to prevent cross-company data access.
type PayrollRepository interface {
	CreateRun(ctx context.Context, run Run) (Run, error)
	GetRunByID(ctx context.Context, id string, companyID string) (Run, error)
	ListRuns(ctx context.Context, companyID string, filter RunFilter) ([]Run, int64, error)
	UpdateRunTotals(ctx context.Context, run Run) error

	CreateItems(ctx context.Context, items []Item) error
	GetItemsByRunID(ctx context.Context, runID string, companyID string) ([]Item, error)

	// FindDraftRunsWithItems returns runs stuck in draft that already have
	// items persisted. Used by the reconciliation job.
	FindDraftRunsWithItems(ctx context.Context) ([]Run, error)
}
