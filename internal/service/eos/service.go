package eos

import (
	"context"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/allowance"
	"github.com/sanadhr/payroll-backend-go/internal/domain/auth"
	"github.com/sanadhr/payroll-backend-go/internal/domain/employee"
	"github.com/sanadhr/payroll-backend-go/internal/domain/eos"
	"github.com/sanadhr/payroll-backend-go/internal/domain/policy"
	payrollsvc "github.com/sanadhr/payroll-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Service-year math mirrors the statutory settlement tables: calendar days
// divided by the mean Gregorian year, remainder expressed in mean months.
const (
	daysPerYear  = 365.25
	daysPerMonth = 30.44
)

type EOSServiceImpl struct {
	eosRepo       eos.EOSRepository
	employeeRepo  employee.EmployeeRepository
	allowanceRepo allowance.AllowanceRepository
	policyRepo    policy.PolicyRepository
}

func NewEOSService(
	eosRepo eos.EOSRepository,
	employeeRepo employee.EmployeeRepository,
	allowanceRepo allowance.AllowanceRepository,
	policyRepo policy.PolicyRepository,
) eos.EOSService {
	return &EOSServiceImpl{
		eosRepo:       eosRepo,
		employeeRepo:  employeeRepo,
		allowanceRepo: allowanceRepo,
		policyRepo:    policyRepo,
	}
}

func getCompanyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrUnauthorized
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", auth.ErrUnauthorized
	}
	return companyID, nil
}

func (s *EOSServiceImpl) Calculate(ctx context.Context, req eos.CalculateRequest) (eos.CalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return eos.CalculationResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return eos.CalculationResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return eos.CalculationResponse{}, err
	}

	calcDate, _ := time.Parse(dateLayout, req.CalculationDate)

	totalServiceDays := int(calcDate.Sub(emp.HireDate).Hours() / 24)
	if totalServiceDays < 0 {
		totalServiceDays = 0
	}
	serviceYears := float64(totalServiceDays) / daysPerYear
	serviceMonths := math.Mod(float64(totalServiceDays), daysPerYear) / daysPerMonth

	laborPolicy, err := s.policyRepo.GetEffective(ctx, companyID, calcDate)
	if err != nil {
		return eos.CalculationResponse{}, err
	}

	assignments, err := s.allowanceRepo.GetActiveAssignments(ctx, emp.ID, calcDate)
	if err != nil {
		return eos.CalculationResponse{}, err
	}

	calc := payrollsvc.NewCalculator(laborPolicy)
	lines := calc.Allowances(assignments, emp.BasicSalary)

	allowancesIncluded := decimal.Zero
	var breakdown []eos.AllowanceLine
	for _, line := range lines {
		if !line.AffectsEOS {
			continue
		}
		allowancesIncluded = allowancesIncluded.Add(line.Amount)
		breakdown = append(breakdown, eos.AllowanceLine{
			Code:   line.Code,
			Name:   line.Name,
			Amount: line.Amount,
		})
	}

	calculationBase := emp.BasicSalary.Add(allowancesIncluded)
	eosAmount := computeBenefit(calculationBase, serviceYears, eos.Reason(req.Reason))

	created, err := s.eosRepo.CreateCalculation(ctx, eos.Calculation{
		EmployeeID:         emp.ID,
		CalculationDate:    calcDate,
		ServiceYears:       serviceYears,
		ServiceMonths:      serviceMonths,
		TotalServiceDays:   totalServiceDays,
		BasicSalary:        emp.BasicSalary,
		AllowancesIncluded: allowancesIncluded,
		CalculationBase:    calculationBase,
		EOSAmount:          eosAmount,
		Reason:             eos.Reason(req.Reason),
		Details: &eos.Details{
			HireDate:            emp.HireDate.Format(dateLayout),
			CalculationMethod:   req.Reason,
			AllowancesBreakdown: breakdown,
		},
	})
	if err != nil {
		return eos.CalculationResponse{}, err
	}

	return toCalculationResponse(created), nil
}

// computeBenefit applies the Saudi severance schedule. Resignation pays half
// a month per year for the first five years and a full month per year after;
// all other reasons pay a full month per year. Never negative.
func computeBenefit(base decimal.Decimal, serviceYears float64, reason eos.Reason) decimal.Decimal {
	if serviceYears <= 0 {
		return decimal.Zero
	}

	twelve := decimal.NewFromInt(12)
	years := decimal.NewFromFloat(serviceYears)

	if reason == eos.ReasonResignation {
		if serviceYears <= 5 {
			return base.Mul(years).Mul(decimal.NewFromFloat(0.5)).Div(twelve)
		}
		firstFive := base.Mul(decimal.NewFromInt(5)).Mul(decimal.NewFromFloat(0.5)).Div(twelve)
		remaining := base.Mul(years.Sub(decimal.NewFromInt(5))).Div(twelve)
		return firstFive.Add(remaining)
	}

	return base.Mul(years).Div(twelve)
}

func (s *EOSServiceImpl) GetCalculation(ctx context.Context, id string) (eos.CalculationResponse, error) {
	if _, err := getCompanyIDFromContext(ctx); err != nil {
		return eos.CalculationResponse{}, err
	}

	calc, err := s.eosRepo.GetCalculationByID(ctx, id)
	if err != nil {
		return eos.CalculationResponse{}, err
	}

	return toCalculationResponse(calc), nil
}

func (s *EOSServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]eos.CalculationResponse, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Ensure the employee belongs to the caller's company
	if _, err := s.employeeRepo.GetByID(ctx, employeeID, companyID); err != nil {
		return nil, err
	}

	calcs, err := s.eosRepo.ListByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]eos.CalculationResponse, len(calcs))
	for i, calc := range calcs {
		responses[i] = toCalculationResponse(calc)
	}

	return responses, nil
}

func toCalculationResponse(calc eos.Calculation) eos.CalculationResponse {
	return eos.CalculationResponse{
		ID:                 calc.ID,
		EmployeeID:         calc.EmployeeID,
		CalculationDate:    calc.CalculationDate.Format(dateLayout),
		ServiceYears:       calc.ServiceYears,
		ServiceMonths:      calc.ServiceMonths,
		TotalServiceDays:   calc.TotalServiceDays,
		BasicSalary:        calc.BasicSalary,
		AllowancesIncluded: calc.AllowancesIncluded,
		CalculationBase:    calc.CalculationBase,
		EOSAmount:          calc.EOSAmount,
		Reason:             string(calc.Reason),
	}
}
