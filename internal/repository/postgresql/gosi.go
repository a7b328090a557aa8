package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/gosi"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/database"
)

type gosiRepository struct {
	db *database.DB
}

func NewGOSIRepository(db *database.DB) gosi.GOSIRepository {
	return &gosiRepository{db: db}
}

func (r *gosiRepository) GetRates(ctx context.Context, hireDate time.Time, isSaudi bool, asOf time.Time) (gosi.RateSchedule, error) {
	q := GetQuerier(ctx, r.db)

	// Non-Saudi employees only match rows not restricted to Saudis.
	query := `
		SELECT id, hire_date_from, hire_date_to, saudi_only, employee_rate, employer_rate,
			effective_from, effective_to
		FROM gosi_rate_schedules
		WHERE hire_date_from <= $1
		  AND (hire_date_to IS NULL OR hire_date_to >= $1)
		  AND (saudi_only = false OR $2)
		  AND effective_from <= $3
		  AND (effective_to IS NULL OR effective_to >= $3)
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var s gosi.RateSchedule
	err := q.QueryRow(ctx, query, hireDate, isSaudi, asOf).Scan(
		&s.ID, &s.HireDateFrom, &s.HireDateTo, &s.SaudiOnly, &s.EmployeeRate, &s.EmployerRate,
		&s.EffectiveFrom, &s.EffectiveTo,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return gosi.RateSchedule{}, gosi.ErrRateScheduleNotFound
		}
		return gosi.RateSchedule{}, fmt.Errorf("failed to get gosi rates: %w", err)
	}

	return s, nil
}

func (r *gosiRepository) CreateSyncLog(ctx context.Context, log gosi.SyncLog) (gosi.SyncLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO gosi_sync_logs (company_id, sync_type, status)
		VALUES ($1, $2, $3)
		RETURNING id, company_id, sync_type, status, records_processed, records_success,
			records_failed, error_detail, started_at, completed_at
	`

	var created gosi.SyncLog
	err := q.QueryRow(ctx, query, log.CompanyID, log.SyncType, log.Status).Scan(
		&created.ID, &created.CompanyID, &created.SyncType, &created.Status,
		&created.RecordsProcessed, &created.RecordsSuccess, &created.RecordsFailed,
		&created.ErrorDetail, &created.StartedAt, &created.CompletedAt,
	)
	if err != nil {
		return gosi.SyncLog{}, fmt.Errorf("failed to create gosi sync log: %w", err)
	}

	return created, nil
}

func (r *gosiRepository) UpdateSyncLog(ctx context.Context, log gosi.SyncLog) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE gosi_sync_logs
		SET status = $1, records_processed = $2, records_success = $3, records_failed = $4,
			error_detail = $5, completed_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		log.Status, log.RecordsProcessed, log.RecordsSuccess, log.RecordsFailed,
		log.ErrorDetail, log.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update gosi sync log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return gosi.ErrSyncLogNotFound
	}

	return nil
}
