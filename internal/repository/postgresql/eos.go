package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/eos"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/database"
)

type eosRepository struct {
	db *database.DB
}

func NewEOSRepository(db *database.DB) eos.EOSRepository {
	return &eosRepository{db: db}
}

const eosColumns = `
	id, employee_id, calculation_date, service_years, service_months,
	total_service_days, basic_salary, allowances_included, calculation_base,
	eos_amount, reason, calculation_details, created_at
`

func scanEOSCalculation(row pgx.Row) (eos.Calculation, error) {
	var c eos.Calculation
	var detailsRaw []byte
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.CalculationDate, &c.ServiceYears, &c.ServiceMonths,
		&c.TotalServiceDays, &c.BasicSalary, &c.AllowancesIncluded, &c.CalculationBase,
		&c.EOSAmount, &c.Reason, &detailsRaw, &c.CreatedAt,
	)
	if err != nil {
		return eos.Calculation{}, err
	}
	if len(detailsRaw) > 0 {
		var details eos.Details
		if err := json.Unmarshal(detailsRaw, &details); err != nil {
			return eos.Calculation{}, fmt.Errorf("failed to decode eos details: %w", err)
		}
		c.Details = &details
	}
	return c, nil
}

func (r *eosRepository) CreateCalculation(ctx context.Context, calc eos.Calculation) (eos.Calculation, error) {
	q := GetQuerier(ctx, r.db)

	detailsRaw, err := json.Marshal(calc.Details)
	if err != nil {
		return eos.Calculation{}, fmt.Errorf("failed to encode eos details: %w", err)
	}

	query := `
		INSERT INTO end_of_service_calculations (
			employee_id, calculation_date, service_years, service_months,
			total_service_days, basic_salary, allowances_included, calculation_base,
			eos_amount, reason, calculation_details
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + eosColumns

	created, err := scanEOSCalculation(q.QueryRow(ctx, query,
		calc.EmployeeID, calc.CalculationDate, calc.ServiceYears, calc.ServiceMonths,
		calc.TotalServiceDays, calc.BasicSalary, calc.AllowancesIncluded, calc.CalculationBase,
		calc.EOSAmount, calc.Reason, detailsRaw,
	))
	if err != nil {
		return eos.Calculation{}, fmt.Errorf("failed to create eos calculation: %w", err)
	}

	return created, nil
}

func (r *eosRepository) GetCalculationByID(ctx context.Context, id string) (eos.Calculation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + eosColumns + ` FROM end_of_service_calculations WHERE id = $1`

	c, err := scanEOSCalculation(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return eos.Calculation{}, eos.ErrCalculationNotFound
		}
		return eos.Calculation{}, fmt.Errorf("failed to get eos calculation: %w", err)
	}

	return c, nil
}

func (r *eosRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]eos.Calculation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + eosColumns + ` FROM end_of_service_calculations WHERE employee_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list eos calculations: %w", err)
	}
	defer rows.Close()

	var calcs []eos.Calculation
	for rows.Next() {
		c, err := scanEOSCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan eos calculation: %w", err)
		}
		calcs = append(calcs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read eos calculations: %w", err)
	}

	return calcs, nil
}
