package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/allowance"
	"github.com/sanadhr/payroll-backend-go/internal/domain/attendance"
	"github.com/sanadhr/payroll-backend-go/internal/domain/auth"
	"github.com/sanadhr/payroll-backend-go/internal/domain/employee"
	"github.com/sanadhr/payroll-backend-go/internal/domain/gosi"
	"github.com/sanadhr/payroll-backend-go/internal/domain/leave"
	"github.com/sanadhr/payroll-backend-go/internal/domain/loan"
	"github.com/sanadhr/payroll-backend-go/internal/domain/payroll"
	"github.com/sanadhr/payroll-backend-go/internal/domain/policy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== fakes ==========

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id && emp.CompanyID == companyID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.CompanyID == companyID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetActiveByIDs(_ context.Context, companyID string, ids []string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		for _, id := range ids {
			if emp.ID == id && emp.CompanyID == companyID {
				out = append(out, emp)
			}
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	records map[string][]attendance.Record
}

func (f *fakeAttendanceRepo) GetByEmployeeAndRange(_ context.Context, employeeID string, _, _ time.Time) ([]attendance.Record, error) {
	return f.records[employeeID], nil
}

func (f *fakeAttendanceRepo) GetByEmployeeIDsAndRange(_ context.Context, ids []string, _, _ time.Time) (map[string][]attendance.Record, error) {
	return f.records, nil
}

type fakePolicyRepo struct{}

func (f *fakePolicyRepo) GetEffective(context.Context, string, time.Time) (policy.LaborPolicy, error) {
	return policy.SaudiDefaults(), nil
}

type fakeAllowanceRepo struct {
	assignments map[string][]allowance.Assignment
}

func (f *fakeAllowanceRepo) GetActiveAssignments(_ context.Context, employeeID string, _ time.Time) ([]allowance.Assignment, error) {
	return f.assignments[employeeID], nil
}

func (f *fakeAllowanceRepo) GetActiveAssignmentsByEmployeeIDs(_ context.Context, _ []string, _ time.Time) (map[string][]allowance.Assignment, error) {
	return f.assignments, nil
}

type fakeLoanRepo struct {
	loans map[string][]loan.Loan
}

func (f *fakeLoanRepo) GetActiveByEmployeeID(_ context.Context, employeeID string) ([]loan.Loan, error) {
	return f.loans[employeeID], nil
}

func (f *fakeLoanRepo) GetActiveByEmployeeIDs(_ context.Context, _ []string) (map[string][]loan.Loan, error) {
	return f.loans, nil
}

type fakeLeaveRepo struct {
	requests map[string][]leave.Request
}

func (f *fakeLeaveRepo) GetApprovedByEmployeeAndRange(_ context.Context, employeeID string, _, _ time.Time) ([]leave.Request, error) {
	return f.requests[employeeID], nil
}

func (f *fakeLeaveRepo) GetApprovedByEmployeeIDsAndRange(_ context.Context, _ []string, _, _ time.Time) (map[string][]leave.Request, error) {
	return f.requests, nil
}

func (f *fakeLeaveRepo) GetBalances(context.Context, string, int) ([]leave.Balance, error) {
	return nil, nil
}

type fakeGOSIRepo struct{}

func (f *fakeGOSIRepo) GetRates(context.Context, time.Time, bool, time.Time) (gosi.RateSchedule, error) {
	return gosi.RateSchedule{}, gosi.ErrRateScheduleNotFound
}

func (f *fakeGOSIRepo) CreateSyncLog(_ context.Context, log gosi.SyncLog) (gosi.SyncLog, error) {
	return log, nil
}

func (f *fakeGOSIRepo) UpdateSyncLog(context.Context, gosi.SyncLog) error {
	return nil
}

type fakePayrollRepo struct {
	runs       []payroll.Run
	items      map[string][]payroll.Item
	draftRuns  []payroll.Run
	updated    []payroll.Run
	listTotal  int64
	listCalled payroll.RunFilter
}

func (f *fakePayrollRepo) CreateRun(_ context.Context, run payroll.Run) (payroll.Run, error) {
	run.ID = "run-1"
	f.runs = append(f.runs, run)
	return run, nil
}

func (f *fakePayrollRepo) GetRunByID(_ context.Context, id string, companyID string) (payroll.Run, error) {
	for _, run := range f.runs {
		if run.ID == id && run.CompanyID == companyID {
			return run, nil
		}
	}
	return payroll.Run{}, payroll.ErrRunNotFound
}

func (f *fakePayrollRepo) ListRuns(_ context.Context, companyID string, filter payroll.RunFilter) ([]payroll.Run, int64, error) {
	f.listCalled = filter
	return f.runs, f.listTotal, nil
}

func (f *fakePayrollRepo) UpdateRunTotals(_ context.Context, run payroll.Run) error {
	f.updated = append(f.updated, run)
	return nil
}

func (f *fakePayrollRepo) CreateItems(_ context.Context, items []payroll.Item) error {
	if f.items == nil {
		f.items = make(map[string][]payroll.Item)
	}
	for _, item := range items {
		f.items[item.PayrollRunID] = append(f.items[item.PayrollRunID], item)
	}
	return nil
}

func (f *fakePayrollRepo) GetItemsByRunID(_ context.Context, runID string, _ string) ([]payroll.Item, error) {
	return f.items[runID], nil
}

func (f *fakePayrollRepo) FindDraftRunsWithItems(context.Context) ([]payroll.Run, error) {
	return f.draftRuns, nil
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

func newTestService(payrollRepo *fakePayrollRepo, empRepo *fakeEmployeeRepo, attRepo *fakeAttendanceRepo) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		employeeRepo:   empRepo,
		allowanceRepo:  &fakeAllowanceRepo{},
		attendanceRepo: attRepo,
		loanRepo:       &fakeLoanRepo{},
		leaveRepo:      &fakeLeaveRepo{},
		gosiRepo:       &fakeGOSIRepo{},
		policyRepo:     &fakePolicyRepo{},
		transact: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return fn(ctx)
		},
		concurrency: 4,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// ========== tests ==========

func TestCalculateRejectsCompanyMismatch(t *testing.T) {
	svc := newTestService(&fakePayrollRepo{}, &fakeEmployeeRepo{}, &fakeAttendanceRepo{})

	_, err := svc.Calculate(authedContext(t, "comp-1"), payroll.CalculateRequest{
		CompanyID:      "comp-2",
		PayPeriodStart: "2025-01-01",
		PayPeriodEnd:   "2025-01-31",
		PayDate:        "2025-02-01",
	})
	assert.ErrorIs(t, err, auth.ErrCompanyForbidden)
}

func TestCalculateRejectsInvalidPeriod(t *testing.T) {
	svc := newTestService(&fakePayrollRepo{}, &fakeEmployeeRepo{}, &fakeAttendanceRepo{})

	_, err := svc.Calculate(authedContext(t, "comp-1"), payroll.CalculateRequest{
		CompanyID:      "comp-1",
		PayPeriodStart: "2025-01-31",
		PayPeriodEnd:   "2025-01-01",
		PayDate:        "2025-02-01",
	})
	require.Error(t, err)
}

func TestCalculateRequiresAuth(t *testing.T) {
	svc := newTestService(&fakePayrollRepo{}, &fakeEmployeeRepo{}, &fakeAttendanceRepo{})

	_, err := svc.Calculate(context.Background(), payroll.CalculateRequest{
		CompanyID:      "comp-1",
		PayPeriodStart: "2025-01-01",
		PayPeriodEnd:   "2025-01-31",
		PayDate:        "2025-02-01",
	})
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestCalculatePersistsItemForEveryActiveEmployee(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", CompanyID: "comp-1", BasicSalary: decimal.NewFromInt(8000), WorkingHoursPerDay: 8, WorkingDaysPerWeek: 5},
		{ID: "emp-2", CompanyID: "comp-1", BasicSalary: decimal.NewFromInt(8000), WorkingHoursPerDay: 8, WorkingDaysPerWeek: 5},
		{ID: "emp-3", CompanyID: "comp-1", BasicSalary: decimal.NewFromInt(8000), WorkingHoursPerDay: 8, WorkingDaysPerWeek: 5},
	}}
	repo := &fakePayrollRepo{}
	svc := newTestService(repo, empRepo, &fakeAttendanceRepo{})

	result, err := svc.Calculate(authedContext(t, "comp-1"), payroll.CalculateRequest{
		CompanyID:      "comp-1",
		PayPeriodStart: "2025-01-01",
		PayPeriodEnd:   "2025-01-31",
		PayDate:        "2025-02-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "run-1", result.PayrollRunID)
	assert.Equal(t, 3, result.Summary.TotalEmployees)

	// One item per active employee, all bound to the created run.
	items := repo.items["run-1"]
	require.Len(t, items, 3)
	for _, item := range items {
		assert.Equal(t, "run-1", item.PayrollRunID)
	}

	require.Len(t, repo.updated, 1)
	updated := repo.updated[0]
	assert.Equal(t, payroll.RunStatusCalculated, updated.Status)
	assert.Equal(t, 3, updated.TotalEmployees)
	// Each employee: gross 8000, GOSI 800, net 7200.
	assert.True(t, updated.TotalGrossPay.Equal(decimal.NewFromInt(24000)), "gross %s", updated.TotalGrossPay)
	assert.True(t, updated.TotalDeductions.Equal(decimal.NewFromInt(2400)), "deductions %s", updated.TotalDeductions)
	assert.True(t, updated.TotalNetPay.Equal(decimal.NewFromInt(21600)), "net %s", updated.TotalNetPay)
	assert.True(t, result.Summary.TotalNetPay.Equal(updated.TotalNetPay))
	require.NotNil(t, updated.CalculationLog)
	assert.Equal(t, 3, updated.CalculationLog.EmployeeCount)
}

func TestCalculateRejectsEmptyEmployeeSet(t *testing.T) {
	svc := newTestService(&fakePayrollRepo{}, &fakeEmployeeRepo{}, &fakeAttendanceRepo{})

	_, err := svc.Calculate(authedContext(t, "comp-1"), payroll.CalculateRequest{
		CompanyID:      "comp-1",
		PayPeriodStart: "2025-01-01",
		PayPeriodEnd:   "2025-01-31",
		PayDate:        "2025-02-01",
	})
	assert.ErrorIs(t, err, payroll.ErrNoActiveEmployees)
}

func TestCalculateOvertimeEndpoint(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{{
		ID:                 "emp-1",
		CompanyID:          "comp-1",
		BasicSalary:        decimal.NewFromInt(8660),
		WorkingHoursPerDay: 8,
		WorkingDaysPerWeek: 5,
	}}}
	attRepo := &fakeAttendanceRepo{records: map[string][]attendance.Record{
		"emp-1": {
			{ActualHours: 10, PlannedHours: 8},
			{ActualHours: 11, PlannedHours: 8},
		},
	}}
	svc := newTestService(&fakePayrollRepo{}, empRepo, attRepo)

	result, err := svc.CalculateOvertime(authedContext(t, "comp-1"), payroll.OvertimeRequest{
		EmployeeID: "emp-1",
		StartDate:  "2025-01-01",
		EndDate:    "2025-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 5.0, result.OvertimeHours)
	// 50/hour * 1.5 * 5h
	assert.True(t, result.OvertimeAmount.Equal(decimal.NewFromInt(375)), "got %s", result.OvertimeAmount)
}

func TestApplyRamadanAdjustments(t *testing.T) {
	empRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", CompanyID: "comp-1", BasicSalary: decimal.NewFromInt(9600), WorkingHoursPerDay: 8},
		{ID: "emp-2", CompanyID: "comp-1", BasicSalary: decimal.NewFromInt(6300), WorkingHoursPerDay: 7},
	}}
	svc := newTestService(&fakePayrollRepo{}, empRepo, &fakeAttendanceRepo{})

	result, err := svc.ApplyRamadanAdjustments(authedContext(t, "comp-1"), payroll.RamadanAdjustmentsRequest{
		CompanyID:        "comp-1",
		RamadanStartDate: "2025-03-01",
		RamadanEndDate:   "2025-03-30",
	})
	require.NoError(t, err)
	require.Len(t, result.Adjustments, 2)
	assert.Equal(t, 2, result.TotalEmployees)

	// 8h -> 6h: rate 9600/(8*30)=40, adjustment 40*2*30 = 2400
	first := result.Adjustments[0]
	assert.Equal(t, 8.0, first.RegularHours)
	assert.Equal(t, 6.0, first.RamadanHours)
	assert.True(t, first.AdjustmentAmount.Equal(decimal.NewFromInt(2400)), "got %s", first.AdjustmentAmount)

	// 7h day hits the 6-hour floor: only one hour credited
	// rate 6300/(7*30)=30, adjustment 30*1*30 = 900
	second := result.Adjustments[1]
	assert.Equal(t, 6.0, second.RamadanHours)
	assert.True(t, second.AdjustmentAmount.Equal(decimal.NewFromInt(900)), "got %s", second.AdjustmentAmount)
}

func TestListRunsDefaultsPagination(t *testing.T) {
	repo := &fakePayrollRepo{listTotal: 0}
	svc := newTestService(repo, &fakeEmployeeRepo{}, &fakeAttendanceRepo{})

	result, err := svc.ListRuns(authedContext(t, "comp-1"), payroll.RunFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, 20, repo.listCalled.Limit)
}

func TestReconcileFlipsDraftRuns(t *testing.T) {
	draft := payroll.Run{
		ID:        "run-9",
		CompanyID: "comp-1",
		Status:    payroll.RunStatusDraft,
	}
	repo := &fakePayrollRepo{
		draftRuns: []payroll.Run{draft},
		items: map[string][]payroll.Item{
			"run-9": {
				{GrossPay: decimal.NewFromInt(5000), TotalDeductions: decimal.NewFromInt(500), NetPay: decimal.NewFromInt(4500)},
				{GrossPay: decimal.NewFromInt(7000), TotalDeductions: decimal.NewFromInt(700), NetPay: decimal.NewFromInt(6300)},
			},
		},
	}
	svc := newTestService(repo, &fakeEmployeeRepo{}, &fakeAttendanceRepo{})

	err := svc.Reconcile(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.updated, 1)
	updated := repo.updated[0]
	assert.Equal(t, payroll.RunStatusCalculated, updated.Status)
	assert.Equal(t, 2, updated.TotalEmployees)
	assert.True(t, updated.TotalGrossPay.Equal(decimal.NewFromInt(12000)))
	assert.True(t, updated.TotalNetPay.Equal(decimal.NewFromInt(10800)))
	require.NotNil(t, updated.CalculationLog)
	assert.Equal(t, 2, updated.CalculationLog.EmployeeCount)
}

func TestReconcileNothingToDo(t *testing.T) {
	repo := &fakePayrollRepo{}
	svc := newTestService(repo, &fakeEmployeeRepo{}, &fakeAttendanceRepo{})

	require.NoError(t, svc.Reconcile(context.Background()))
	assert.Empty(t, repo.updated)
}
