package leave

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/auth"
	"github.com/sanadhr/payroll-backend-go/internal/domain/employee"
	"github.com/sanadhr/payroll-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// Annual leave per Saudi labor law article 109: 21 days, rising to 30 after
// five years of service.
const (
	baseEntitlementDays     = 21
	extendedEntitlementDays = 30
	extendedServiceYears    = 5
)

type LeaveServiceImpl struct {
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewLeaveService(
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
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

func (s *LeaveServiceImpl) Entitlement(ctx context.Context, req leave.EntitlementRequest) (leave.EntitlementResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.EntitlementResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return leave.EntitlementResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return leave.EntitlementResponse{}, err
	}

	year := req.Year
	if year == 0 {
		year = s.now().Year()
	}

	serviceYears := int(s.now().Sub(emp.HireDate).Hours() / 24 / 365)
	entitlement := float64(baseEntitlementDays)
	if serviceYears >= extendedServiceYears {
		entitlement = float64(extendedEntitlementDays)
	}

	balances, err := s.leaveRepo.GetBalances(ctx, emp.ID, year)
	if err != nil {
		return leave.EntitlementResponse{}, err
	}

	var usedDays float64
	for _, balance := range balances {
		usedDays += balance.UsedDays
	}

	return leave.EntitlementResponse{
		AnnualEntitlement:    entitlement,
		UsedDays:             usedDays,
		RemainingDays:        entitlement - usedDays,
		LeaveSalaryDeduction: decimal.Zero,
	}, nil
}
