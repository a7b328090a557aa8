package payroll

import (
	"context"
)

// PayrollService defines business logic for payroll calculation
type PayrollService interface {
	// Calculate runs a full payroll calculation for the period and persists
	// the run with its items atomically (companyID cross-checked with JWT)
	Calculate(ctx context.Context, req CalculateRequest) (RunSummaryResponse, error)

	// GetRun retrieves a payroll run by ID
	GetRun(ctx context.Context, id string) (RunResponse, error)

	// ListRuns lists payroll runs with filters
	ListRuns(ctx context.Context, filter RunFilter) (ListRunsResponse, error)

	// GetRunItems retrieves the per-employee breakdown of a run
	GetRunItems(ctx context.Context, runID string) ([]ItemResponse, error)

	// CalculateOvertime computes the overtime split for one employee over a
	// date range without persisting anything
	CalculateOvertime(ctx context.Context, req OvertimeRequest) (Overtime, error)

	// ApplyRamadanAdjustments computes per-employee Ramadan working-hour
	// adjustments for all active employees
	ApplyRamadanAdjustments(ctx context.Context, req RamadanAdjustmentsRequest) (RamadanAdjustmentsResponse, error)

	// Reconcile repairs runs left in draft with items persisted. Invoked by
	// the background scheduler.
	Reconcile(ctx context.Context) error
}
