package payroll

import (
	"math"
	"time"

	"github.com/sanadhr/payroll-backend-go/internal/domain/allowance"
	"github.com/sanadhr/payroll-backend-go/internal/domain/attendance"
	"github.com/sanadhr/payroll-backend-go/internal/domain/gosi"
	"github.com/sanadhr/payroll-backend-go/internal/domain/leave"
	"github.com/sanadhr/payroll-backend-go/internal/domain/loan"
	"github.com/sanadhr/payroll-backend-go/internal/domain/payroll"
	"github.com/sanadhr/payroll-backend-go/internal/domain/policy"
	"github.com/shopspring/decimal"
)

// Calculator holds the labor-policy parameters and performs every
// per-employee sub-calculation. All methods are pure: they operate on
// pre-fetched rows, never on the database.
type Calculator struct {
	policy policy.LaborPolicy
}

func NewCalculator(p policy.LaborPolicy) *Calculator {
	return &Calculator{policy: p}
}

// WorkingDays estimates scheduled days in the period from the employee's
// days-per-week: round((calendarDays/7) * daysPerWeek).
func (c *Calculator) WorkingDays(periodStart, periodEnd time.Time, daysPerWeek float64) int {
	if daysPerWeek <= 0 {
		daysPerWeek = 5
	}
	calendarDays := math.Ceil(periodEnd.Sub(periodStart).Hours() / 24)
	return int(math.Round(calendarDays / 7 * daysPerWeek))
}

// HourlyRate derives the hourly wage from the monthly basic salary:
// basic / (dailyHours * daysPerWeek * averageWeeksPerMonth).
func (c *Calculator) HourlyRate(basicSalary decimal.Decimal, dailyHours, daysPerWeek float64) decimal.Decimal {
	if dailyHours <= 0 {
		dailyHours = 8
	}
	if daysPerWeek <= 0 {
		daysPerWeek = 5
	}
	monthlyHours := dailyHours * daysPerWeek * c.policy.AverageWeeksPerMonth
	return basicSalary.Div(decimal.NewFromFloat(monthlyHours))
}

// Allowances computes the active allowance lines for an employee.
// Percentage allowances are capped at the definition's max amount; the
// OVERTIME formula code is zeroed here because overtime pay comes from the
// attendance-based calculation, never from the allowance table.
func (c *Calculator) Allowances(assignments []allowance.Assignment, basicSalary decimal.Decimal) []payroll.AllowanceLine {
	lines := make([]payroll.AllowanceLine, 0, len(assignments))

	for _, a := range assignments {
		def := a.Definition
		var amount decimal.Decimal

		switch def.CalculationType {
		case allowance.CalculationTypeFixed:
			amount = a.Amount
			if amount.IsZero() {
				amount = def.DefaultAmount
			}
		case allowance.CalculationTypePercentage:
			amount = basicSalary.Mul(def.Percentage).Div(decimal.NewFromInt(100))
			if def.MaxAmount != nil && amount.GreaterThan(*def.MaxAmount) {
				amount = *def.MaxAmount
			}
		case allowance.CalculationTypeFormula:
			if def.Code == "OVERTIME" {
				amount = decimal.Zero
			} else {
				amount = a.Amount
			}
		default:
			amount = a.Amount
		}

		lines = append(lines, payroll.AllowanceLine{
			Code:        def.Code,
			Name:        def.NameEN,
			Amount:      amount,
			IsTaxable:   def.IsTaxable,
			AffectsEOS:  def.AffectsEOS,
			AffectsGOSI: def.AffectsGOSI,
		})
	}

	return lines
}

// SumAllowances totals allowance lines.
func SumAllowances(lines []payroll.AllowanceLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}
	return total
}

// Overtime splits attendance into regular and overtime hours and prices the
// overtime at the statutory multiplier. Overtime hours per day are
// max(actual - planned, 0); regular hours never exceed planned hours.
func (c *Calculator) Overtime(records []attendance.Record, basicSalary decimal.Decimal, dailyHours, daysPerWeek float64) payroll.Overtime {
	var regularHours, overtimeHours float64

	for _, rec := range records {
		actual := rec.ActualHours
		planned := rec.PlannedHours
		if planned <= 0 {
			planned = 8
		}
		if actual > planned {
			overtimeHours += actual - planned
			regularHours += planned
		} else {
			regularHours += actual
		}
	}

	overtimeRate := c.HourlyRate(basicSalary, dailyHours, daysPerWeek).Mul(c.policy.OvertimeMultiplier)
	overtimeAmount := overtimeRate.Mul(decimal.NewFromFloat(overtimeHours))

	return payroll.Overtime{
		RegularHours:   regularHours,
		OvertimeHours:  overtimeHours,
		OvertimeRate:   overtimeRate,
		OvertimeAmount: overtimeAmount,
	}
}

// RamadanDailyHours applies the statutory reduction with its floor:
// max(dailyHours - reduction, minimum).
func (c *Calculator) RamadanDailyHours(dailyHours float64) float64 {
	return math.Max(dailyHours-c.policy.RamadanHoursReduction, c.policy.RamadanMinimumHours)
}

// RamadanAdjustment credits the employee for the schedule hours not worked
// during Ramadan: periodHours * (1 - ramadanDailyHours/dailyHours). The
// credit is additive to gross pay; employees are paid their full schedule
// despite the shortened day.
func (c *Calculator) RamadanAdjustment(periodHours, dailyHours float64) decimal.Decimal {
	if dailyHours <= 0 {
		return decimal.Zero
	}
	ramadanHours := c.RamadanDailyHours(dailyHours)
	if ramadanHours >= dailyHours {
		return decimal.Zero
	}
	return decimal.NewFromFloat(periodHours * (1 - ramadanHours/dailyHours))
}

// GOSI prices both contribution shares against the calculation base. When
// the rate schedule has no row for the employee the policy default rates
// apply; the result is marked so callers can surface the degradation.
func (c *Calculator) GOSI(schedule *gosi.RateSchedule, calculationBase decimal.Decimal) gosi.Calculation {
	employeeRate := c.policy.DefaultGOSIEmployee
	employerRate := c.policy.DefaultGOSIEmployer
	source := "default"
	if schedule != nil {
		employeeRate = schedule.EmployeeRate
		employerRate = schedule.EmployerRate
		source = "schedule"
	}

	return gosi.Calculation{
		EmployeeRate:         employeeRate,
		EmployerRate:         employerRate,
		EmployeeContribution: calculationBase.Mul(employeeRate),
		EmployerContribution: calculationBase.Mul(employerRate),
		CalculationBase:      calculationBase,
		RateSource:           source,
	}
}

// LoanDeductions totals monthly deductions over active loans.
func (c *Calculator) LoanDeductions(loans []loan.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		if l.Status == loan.LoanStatusActive {
			total = total.Add(l.MonthlyDeduction)
		}
	}
	return total
}

// LeaveDeductions prices unpaid approved leave days at the daily salary
// (basic / monthly divisor).
func (c *Calculator) LeaveDeductions(requests []leave.Request, basicSalary decimal.Decimal) decimal.Decimal {
	var unpaidDays float64
	for _, req := range requests {
		if !req.LeaveType.IsPaid {
			unpaidDays += req.DaysRequested
		}
	}
	if unpaidDays == 0 {
		return decimal.Zero
	}
	dailySalary := basicSalary.Div(decimal.NewFromInt(int64(c.policy.MonthlyDivisorDays)))
	return dailySalary.Mul(decimal.NewFromFloat(unpaidDays))
}
