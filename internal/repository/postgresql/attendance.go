package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/attendance"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, actual_hours, planned_hours
		FROM attendance_timesheet
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance records: %w", err)
	}
	defer rows.Close()

	return collectAttendance(rows)
}

func (r *attendanceRepository) GetByEmployeeIDsAndRange(ctx context.Context, employeeIDs []string, start, end time.Time) (map[string][]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, actual_hours, planned_hours
		FROM attendance_timesheet
		WHERE employee_id = ANY($1) AND date >= $2 AND date <= $3
		ORDER BY employee_id, date
	`

	rows, err := q.Query(ctx, query, employeeIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk get attendance records: %w", err)
	}
	defer rows.Close()

	records, err := collectAttendance(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]attendance.Record)
	for _, rec := range records {
		result[rec.EmployeeID] = append(result[rec.EmployeeID], rec)
	}
	return result, nil
}

func collectAttendance(rows pgx.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ActualHours, &rec.PlannedHours); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}
	return records, nil
}
