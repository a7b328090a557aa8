package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/wps"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/database"
)

type wpsRepository struct {
	db *database.DB
}

func NewWPSRepository(db *database.DB) wps.WPSRepository {
	return &wpsRepository{db: db}
}

const submissionColumns = `
	id, company_id, payroll_run_id, wps_file_name, status, records, created_at, updated_at
`

func scanSubmission(row pgx.Row) (wps.Submission, error) {
	var s wps.Submission
	var recordsRaw []byte
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.PayrollRunID, &s.FileName, &s.Status, &recordsRaw,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return wps.Submission{}, err
	}
	if len(recordsRaw) > 0 {
		if err := json.Unmarshal(recordsRaw, &s.Records); err != nil {
			return wps.Submission{}, fmt.Errorf("failed to decode wps records: %w", err)
		}
	}
	return s, nil
}

func (r *wpsRepository) CreateSubmission(ctx context.Context, submission wps.Submission) (wps.Submission, error) {
	q := GetQuerier(ctx, r.db)

	recordsRaw, err := json.Marshal(submission.Records)
	if err != nil {
		return wps.Submission{}, fmt.Errorf("failed to encode wps records: %w", err)
	}

	query := `
		INSERT INTO wps_submissions (company_id, payroll_run_id, wps_file_name, status, records)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + submissionColumns

	created, err := scanSubmission(q.QueryRow(ctx, query,
		submission.CompanyID, submission.PayrollRunID, submission.FileName, submission.Status, recordsRaw,
	))
	if err != nil {
		return wps.Submission{}, fmt.Errorf("failed to create wps submission: %w", err)
	}

	return created, nil
}

func (r *wpsRepository) GetSubmissionByID(ctx context.Context, id string, companyID string) (wps.Submission, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + submissionColumns + ` FROM wps_submissions WHERE id = $1 AND company_id = $2`

	s, err := scanSubmission(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return wps.Submission{}, wps.ErrSubmissionNotFound
		}
		return wps.Submission{}, fmt.Errorf("failed to get wps submission: %w", err)
	}

	return s, nil
}

func (r *wpsRepository) ListByCompanyID(ctx context.Context, companyID string) ([]wps.Submission, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + submissionColumns + ` FROM wps_submissions WHERE company_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wps submissions: %w", err)
	}
	defer rows.Close()

	var submissions []wps.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wps submission: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wps submissions: %w", err)
	}

	return submissions, nil
}
