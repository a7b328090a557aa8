package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/payroll"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== RUNS ==========

const runColumns = `
	id, company_id, run_name, pay_period_start, pay_period_end, pay_date,
	is_ramadan_period, status, total_employees, total_gross_pay,
	total_deductions, total_net_pay, calculation_log, created_at, updated_at
`

func scanRun(row pgx.Row) (payroll.Run, error) {
	var run payroll.Run
	var logRaw []byte
	err := row.Scan(
		&run.ID, &run.CompanyID, &run.RunName, &run.PayPeriodStart, &run.PayPeriodEnd, &run.PayDate,
		&run.IsRamadanPeriod, &run.Status, &run.TotalEmployees, &run.TotalGrossPay,
		&run.TotalDeductions, &run.TotalNetPay, &logRaw, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return payroll.Run{}, err
	}
	if len(logRaw) > 0 {
		var log payroll.CalculationLog
		if err := json.Unmarshal(logRaw, &log); err != nil {
			return payroll.Run{}, fmt.Errorf("failed to decode calculation log: %w", err)
		}
		run.CalculationLog = &log
	}
	return run, nil
}

func (r *payrollRepository) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (
			company_id, run_name, pay_period_start, pay_period_end, pay_date,
			is_ramadan_period, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + runColumns

	created, err := scanRun(q.QueryRow(ctx, query,
		run.CompanyID, run.RunName, run.PayPeriodStart, run.PayPeriodEnd, run.PayDate,
		run.IsRamadanPeriod, run.Status,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_run_period") {
			return payroll.Run{}, payroll.ErrRunAlreadyExists
		}
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetRunByID(ctx context.Context, id string, companyID string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id = $1 AND company_id = $2`

	run, err := scanRun(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) ListRuns(ctx context.Context, companyID string, filter payroll.RunFilter) ([]payroll.Run, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE company_id = $1`
	args := []interface{}{companyID}
	if filter.Status != nil {
		where += fmt.Sprintf(` AND status = $%d`, len(args)+1)
		args = append(args, *filter.Status)
	}

	var totalCount int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_runs `+where, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT `+runColumns+`
		FROM payroll_runs %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read payroll runs: %w", err)
	}

	return runs, totalCount, nil
}

func (r *payrollRepository) UpdateRunTotals(ctx context.Context, run payroll.Run) error {
	q := GetQuerier(ctx, r.db)

	logRaw, err := json.Marshal(run.CalculationLog)
	if err != nil {
		return fmt.Errorf("failed to encode calculation log: %w", err)
	}

	query := `
		UPDATE payroll_runs
		SET total_employees = $1, total_gross_pay = $2, total_deductions = $3,
			total_net_pay = $4, status = $5, calculation_log = $6, updated_at = NOW()
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		run.TotalEmployees, run.TotalGrossPay, run.TotalDeductions,
		run.TotalNetPay, run.Status, logRaw, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll run totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

// ========== ITEMS ==========

func (r *payrollRepository) CreateItems(ctx context.Context, items []payroll.Item) error {
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO payroll_items (
			payroll_run_id, employee_id, basic_salary, total_allowances,
			overtime_hours, overtime_amount, ramadan_adjustment, gross_pay,
			gosi_employee, gosi_employer, loan_deductions, leave_deductions,
			total_deductions, net_pay, working_days, working_hours, calculation_details
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	for _, item := range items {
		detailsRaw, err := json.Marshal(item.Details)
		if err != nil {
			return fmt.Errorf("failed to encode calculation details: %w", err)
		}
		batch.Queue(query,
			item.PayrollRunID, item.EmployeeID, item.BasicSalary, item.TotalAllowances,
			item.OvertimeHours, item.OvertimeAmount, item.RamadanAdjustment, item.GrossPay,
			item.GOSIEmployee, item.GOSIEmployer, item.LoanDeductions, item.LeaveDeductions,
			item.TotalDeductions, item.NetPay, item.WorkingDays, item.WorkingHours, detailsRaw,
		)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert payroll item: %w", err)
		}
	}

	return nil
}

func (r *payrollRepository) GetItemsByRunID(ctx context.Context, runID string, companyID string) ([]payroll.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			pi.id, pi.payroll_run_id, pi.employee_id, pi.basic_salary, pi.total_allowances,
			pi.overtime_hours, pi.overtime_amount, pi.ramadan_adjustment, pi.gross_pay,
			pi.gosi_employee, pi.gosi_employer, pi.loan_deductions, pi.leave_deductions,
			pi.total_deductions, pi.net_pay, pi.working_days, pi.working_hours,
			pi.calculation_details, pi.created_at,
			e.employee_number, e.first_name || ' ' || e.last_name, e.national_id, e.iban
		FROM payroll_items pi
		JOIN payroll_runs pr ON pr.id = pi.payroll_run_id
		JOIN employees e ON e.id = pi.employee_id
		WHERE pi.payroll_run_id = $1 AND pr.company_id = $2
		ORDER BY e.employee_number
	`

	rows, err := q.Query(ctx, query, runID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll items: %w", err)
	}
	defer rows.Close()

	var items []payroll.Item
	for rows.Next() {
		var item payroll.Item
		var detailsRaw []byte
		err := rows.Scan(
			&item.ID, &item.PayrollRunID, &item.EmployeeID, &item.BasicSalary, &item.TotalAllowances,
			&item.OvertimeHours, &item.OvertimeAmount, &item.RamadanAdjustment, &item.GrossPay,
			&item.GOSIEmployee, &item.GOSIEmployer, &item.LoanDeductions, &item.LeaveDeductions,
			&item.TotalDeductions, &item.NetPay, &item.WorkingDays, &item.WorkingHours,
			&detailsRaw, &item.CreatedAt,
			&item.EmployeeNumber, &item.EmployeeName, &item.NationalID, &item.IBAN,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll item: %w", err)
		}
		if len(detailsRaw) > 0 {
			var details payroll.ItemDetails
			if err := json.Unmarshal(detailsRaw, &details); err != nil {
				return nil, fmt.Errorf("failed to decode calculation details: %w", err)
			}
			item.Details = &details
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payroll items: %w", err)
	}

	return items, nil
}

// ========== RECONCILIATION ==========

func (r *payrollRepository) FindDraftRunsWithItems(ctx context.Context) ([]payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs pr
		WHERE pr.status = 'draft'
		  AND EXISTS (SELECT 1 FROM payroll_items pi WHERE pi.payroll_run_id = pr.id)
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find draft runs with items: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payroll runs: %w", err)
	}

	return runs, nil
}
