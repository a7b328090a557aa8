package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/policy"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepository{db: db}
}

// GetEffective returns the most recent policy row effective on asOf.
// Companies without a configured policy get the statutory Saudi defaults.
func (r *policyRepository) GetEffective(ctx context.Context, companyID string, asOf time.Time) (policy.LaborPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, overtime_multiplier, ramadan_hours_reduction,
			ramadan_minimum_hours, average_weeks_per_month, monthly_divisor_days,
			default_gosi_employee_rate, default_gosi_employer_rate,
			effective_from, created_at, updated_at
		FROM labor_policies
		WHERE company_id = $1 AND effective_from <= $2
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var p policy.LaborPolicy
	err := q.QueryRow(ctx, query, companyID, asOf).Scan(
		&p.ID, &p.CompanyID, &p.OvertimeMultiplier, &p.RamadanHoursReduction,
		&p.RamadanMinimumHours, &p.AverageWeeksPerMonth, &p.MonthlyDivisorDays,
		&p.DefaultGOSIEmployee, &p.DefaultGOSIEmployer,
		&p.EffectiveFrom, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			defaults := policy.SaudiDefaults()
			defaults.CompanyID = companyID
			return defaults, nil
		}
		return policy.LaborPolicy{}, fmt.Errorf("failed to get labor policy: %w", err)
	}

	return p, nil
}
