package leave

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/employee"
	"github.com/sanadhr/payroll-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepo struct {
	balances []leave.Balance
}

func (f *fakeLeaveRepo) GetApprovedByEmployeeAndRange(context.Context, string, time.Time, time.Time) ([]leave.Request, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) GetApprovedByEmployeeIDsAndRange(context.Context, []string, time.Time, time.Time) (map[string][]leave.Request, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) GetBalances(context.Context, string, int) ([]leave.Balance, error) {
	return f.balances, nil
}

type fakeEmployeeRepo struct {
	emp employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	if f.emp.ID != id || f.emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(context.Context, string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) GetActiveByIDs(context.Context, string, []string) ([]employee.Employee, error) {
	return nil, nil
}

func authedContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	_, tokenString, err := ja.Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": companyID,
		"type":       "access",
	})
	require.NoError(t, err)
	token, err := ja.Decode(tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newService(leaveRepo *fakeLeaveRepo, empRepo *fakeEmployeeRepo, now time.Time) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		leaveRepo:    leaveRepo,
		employeeRepo: empRepo,
		now:          func() time.Time { return now },
	}
}

func TestEntitlementUnderFiveYears(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	empRepo := &fakeEmployeeRepo{emp: employee.Employee{
		ID:        "emp-1",
		CompanyID: "comp-1",
		HireDate:  time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	leaveRepo := &fakeLeaveRepo{balances: []leave.Balance{{UsedDays: 6}}}

	svc := newService(leaveRepo, empRepo, now)
	result, err := svc.Entitlement(authedContext(t, "comp-1"), leave.EntitlementRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, 21.0, result.AnnualEntitlement)
	assert.Equal(t, 6.0, result.UsedDays)
	assert.Equal(t, 15.0, result.RemainingDays)
}

func TestEntitlementFiveYearsOrMore(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	empRepo := &fakeEmployeeRepo{emp: employee.Employee{
		ID:        "emp-1",
		CompanyID: "comp-1",
		HireDate:  time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	leaveRepo := &fakeLeaveRepo{balances: []leave.Balance{{UsedDays: 10}, {UsedDays: 2}}}

	svc := newService(leaveRepo, empRepo, now)
	result, err := svc.Entitlement(authedContext(t, "comp-1"), leave.EntitlementRequest{EmployeeID: "emp-1", Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, 30.0, result.AnnualEntitlement)
	assert.Equal(t, 12.0, result.UsedDays)
	assert.Equal(t, 18.0, result.RemainingDays)
}

func TestEntitlementEmployeeNotFound(t *testing.T) {
	svc := newService(&fakeLeaveRepo{}, &fakeEmployeeRepo{}, time.Now())

	_, err := svc.Entitlement(authedContext(t, "comp-1"), leave.EntitlementRequest{EmployeeID: "emp-404"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
