package gosi

import (
	"context"
	"time"
)

type GOSIRepository interface {
	// GetRates resolves the schedule row for an employee's hire date and
	// nationality as of the given date. Returns ErrRateScheduleNotFound
	// when no row matches; callers fall back to policy defaults.
	GetRates(ctx context.Context, hireDate time.Time, isSaudi bool, asOf time.Time) (RateSchedule, error)

	CreateSyncLog(ctx context.Context, log SyncLog) (SyncLog, error)
	UpdateSyncLog(ctx context.Context, log SyncLog) error
}
