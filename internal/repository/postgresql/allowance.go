package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/allowance"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/database"
)

type allowanceRepository struct {
	db *database.DB
}

func NewAllowanceRepository(db *database.DB) allowance.AllowanceRepository {
	return &allowanceRepository{db: db}
}

const assignmentQuery = `
	SELECT
		ea.id, ea.employee_id, ea.allowance_definition_id, ea.amount,
		ea.effective_from, ea.effective_to, ea.is_active,
		ea.created_at, ea.updated_at,
		ad.id, ad.company_id, ad.allowance_code, ad.allowance_name_en, ad.allowance_name_ar,
		ad.calculation_type, ad.percentage, ad.default_amount, ad.max_amount,
		ad.is_taxable, ad.affects_eos, ad.affects_gosi, ad.is_active,
		ad.created_at, ad.updated_at
	FROM employee_allowances ea
	JOIN allowance_definitions ad ON ad.id = ea.allowance_definition_id
	WHERE ea.is_active = true
	  AND ea.effective_from <= $2
	  AND (ea.effective_to IS NULL OR ea.effective_to >= $2)
`

func scanAssignment(rows pgx.Rows) (allowance.Assignment, error) {
	var a allowance.Assignment
	err := rows.Scan(
		&a.ID, &a.EmployeeID, &a.DefinitionID, &a.Amount,
		&a.EffectiveFrom, &a.EffectiveTo, &a.IsActive,
		&a.CreatedAt, &a.UpdatedAt,
		&a.Definition.ID, &a.Definition.CompanyID, &a.Definition.Code, &a.Definition.NameEN, &a.Definition.NameAR,
		&a.Definition.CalculationType, &a.Definition.Percentage, &a.Definition.DefaultAmount, &a.Definition.MaxAmount,
		&a.Definition.IsTaxable, &a.Definition.AffectsEOS, &a.Definition.AffectsGOSI, &a.Definition.IsActive,
		&a.Definition.CreatedAt, &a.Definition.UpdatedAt,
	)
	return a, err
}

func (r *allowanceRepository) GetActiveAssignments(ctx context.Context, employeeID string, asOf time.Time) ([]allowance.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, assignmentQuery+` AND ea.employee_id = $1`, employeeID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee allowances: %w", err)
	}
	defer rows.Close()

	var assignments []allowance.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allowance assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read allowance assignments: %w", err)
	}

	return assignments, nil
}

func (r *allowanceRepository) GetActiveAssignmentsByEmployeeIDs(ctx context.Context, employeeIDs []string, asOf time.Time) (map[string][]allowance.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, assignmentQuery+` AND ea.employee_id = ANY($1)`, employeeIDs, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk get employee allowances: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]allowance.Assignment)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allowance assignment: %w", err)
		}
		result[a.EmployeeID] = append(result[a.EmployeeID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read allowance assignments: %w", err)
	}

	return result, nil
}
