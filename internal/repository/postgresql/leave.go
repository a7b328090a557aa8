package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/leave"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const approvedRequestQuery = `
	SELECT
		lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
		lr.days_requested, lr.status,
		lt.id, lt.code, lt.name, lt.is_paid
	FROM leave_requests lr
	JOIN leave_types lt ON lt.id = lr.leave_type_id
	WHERE lr.status = 'approved'
	  AND lr.start_date >= $2 AND lr.end_date <= $3
`

func scanLeaveRequest(rows pgx.Rows) (leave.Request, error) {
	var req leave.Request
	err := rows.Scan(
		&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate,
		&req.DaysRequested, &req.Status,
		&req.LeaveType.ID, &req.LeaveType.Code, &req.LeaveType.Name, &req.LeaveType.IsPaid,
	)
	return req, err
}

func (r *leaveRepository) GetApprovedByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, approvedRequestQuery+` AND lr.employee_id = $1`, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func (r *leaveRepository) GetApprovedByEmployeeIDsAndRange(ctx context.Context, employeeIDs []string, start, end time.Time) (map[string][]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, approvedRequestQuery+` AND lr.employee_id = ANY($1)`, employeeIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk get approved leave requests: %w", err)
	}
	defer rows.Close()

	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]leave.Request)
	for _, req := range requests {
		result[req.EmployeeID] = append(result[req.EmployeeID], req)
	}
	return result, nil
}

func (r *leaveRepository) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, year, used_days
		FROM employee_leave_balances
		WHERE employee_id = $1 AND year = $2
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(&b.ID, &b.EmployeeID, &b.Year, &b.UsedDays); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave balances: %w", err)
	}

	return balances, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.Request, error) {
	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leave requests: %w", err)
	}
	return requests, nil
}
