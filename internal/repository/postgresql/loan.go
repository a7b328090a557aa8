package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/loan"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/database"
)

type loanRepository struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) loan.LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) GetActiveByEmployeeID(ctx context.Context, employeeID string) ([]loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, loan_type, monthly_deduction, remaining_amount, status, created_at, updated_at
		FROM employee_loans
		WHERE employee_id = $1 AND status = 'active'
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active loans: %w", err)
	}
	defer rows.Close()

	return collectLoans(rows)
}

func (r *loanRepository) GetActiveByEmployeeIDs(ctx context.Context, employeeIDs []string) (map[string][]loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, loan_type, monthly_deduction, remaining_amount, status, created_at, updated_at
		FROM employee_loans
		WHERE employee_id = ANY($1) AND status = 'active'
	`

	rows, err := q.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk get active loans: %w", err)
	}
	defer rows.Close()

	loans, err := collectLoans(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]loan.Loan)
	for _, l := range loans {
		result[l.EmployeeID] = append(result[l.EmployeeID], l)
	}
	return result, nil
}

func collectLoans(rows pgx.Rows) ([]loan.Loan, error) {
	var loans []loan.Loan
	for rows.Next() {
		var l loan.Loan
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.LoanType, &l.MonthlyDeduction, &l.RemainingAmount, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read loans: %w", err)
	}
	return loans, nil
}
