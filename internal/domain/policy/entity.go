package policy

import (
	"time"

	"github.com/shopspring/decimal"
)

// LaborPolicy holds the jurisdiction-specific labor-law parameters the
// calculation engine depends on, versioned by effective date per company.
// When no row exists for a company the statutory Saudi defaults apply.
type LaborPolicy struct {
	ID                    string
	CompanyID             string
	OvertimeMultiplier    decimal.Decimal
	RamadanHoursReduction float64
	RamadanMinimumHours   float64
	AverageWeeksPerMonth  float64
	MonthlyDivisorDays    int
	DefaultGOSIEmployee   decimal.Decimal
	DefaultGOSIEmployer   decimal.Decimal
	EffectiveFrom         time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// SaudiDefaults returns the statutory parameters per Saudi labor law:
// 150% overtime, 2-hour Ramadan reduction with a 6-hour floor, 4.33 average
// weeks per month, 30-day salary divisor, 10%/12% GOSI fallback rates.
func SaudiDefaults() LaborPolicy {
	return LaborPolicy{
		OvertimeMultiplier:    decimal.NewFromFloat(1.5),
		RamadanHoursReduction: 2,
		RamadanMinimumHours:   6,
		AverageWeeksPerMonth:  4.33,
		MonthlyDivisorDays:    30,
		DefaultGOSIEmployee:   decimal.NewFromFloat(0.10),
		DefaultGOSIEmployer:   decimal.NewFromFloat(0.12),
	}
}
