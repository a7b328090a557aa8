package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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
	"github.com/sanadhr/payroll-backend-go/internal/pkg/database"
	"github.com/sanadhr/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

type PayrollServiceImpl struct {
	db             *database.DB
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	allowanceRepo  allowance.AllowanceRepository
	attendanceRepo attendance.AttendanceRepository
	loanRepo       loan.LoanRepository
	leaveRepo      leave.LeaveRepository
	gosiRepo       gosi.GOSIRepository
	policyRepo     policy.PolicyRepository
	transact       func(ctx context.Context, fn func(txCtx context.Context) error) error
	concurrency    int
	logger         *slog.Logger
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	allowanceRepo allowance.AllowanceRepository,
	attendanceRepo attendance.AttendanceRepository,
	loanRepo loan.LoanRepository,
	leaveRepo leave.LeaveRepository,
	gosiRepo gosi.GOSIRepository,
	policyRepo policy.PolicyRepository,
	concurrency int,
	logger *slog.Logger,
) payroll.PayrollService {
	if concurrency < 1 {
		concurrency = 1
	}
	s := &PayrollServiceImpl{
		db:             db,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		allowanceRepo:  allowanceRepo,
		attendanceRepo: attendanceRepo,
		loanRepo:       loanRepo,
		leaveRepo:      leaveRepo,
		gosiRepo:       gosiRepo,
		policyRepo:     policyRepo,
		concurrency:    concurrency,
		logger:         logger,
	}
	s.transact = func(ctx context.Context, fn func(txCtx context.Context) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", auth.ErrUnauthorized
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", auth.ErrUnauthorized
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// prefetched holds every row the per-employee computation needs, fetched in
// bulk before the parallel section. Computation goroutines never touch the
// database: the shared transaction is not safe for concurrent use.
type prefetched struct {
	allowances map[string][]allowance.Assignment
	records    map[string][]attendance.Record
	loans      map[string][]loan.Loan
	leaves     map[string][]leave.Request
	rates      map[string]*gosi.RateSchedule // keyed by employee id, nil => default rates
}

func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.RunSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunSummaryResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunSummaryResponse{}, err
	}
	if req.CompanyID != companyID {
		return payroll.RunSummaryResponse{}, auth.ErrCompanyForbidden
	}

	periodStart, _ := time.Parse(dateLayout, req.PayPeriodStart)
	periodEnd, _ := time.Parse(dateLayout, req.PayPeriodEnd)
	payDate, _ := time.Parse(dateLayout, req.PayDate)

	laborPolicy, err := s.policyRepo.GetEffective(ctx, companyID, periodEnd)
	if err != nil {
		return payroll.RunSummaryResponse{}, err
	}
	calc := NewCalculator(laborPolicy)

	var employees []employee.Employee
	if len(req.EmployeeIDs) > 0 {
		employees, err = s.employeeRepo.GetActiveByIDs(ctx, companyID, req.EmployeeIDs)
	} else {
		employees, err = s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	}
	if err != nil {
		return payroll.RunSummaryResponse{}, err
	}
	if len(employees) == 0 {
		return payroll.RunSummaryResponse{}, payroll.ErrNoActiveEmployees
	}

	var summary payroll.RunSummaryResponse

	err = s.transact(ctx, func(txCtx context.Context) error {
		run, err := s.payrollRepo.CreateRun(txCtx, payroll.Run{
			CompanyID:       companyID,
			RunName:         fmt.Sprintf("Payroll %s to %s", req.PayPeriodStart, req.PayPeriodEnd),
			PayPeriodStart:  periodStart,
			PayPeriodEnd:    periodEnd,
			PayDate:         payDate,
			IsRamadanPeriod: req.IsRamadanPeriod,
			Status:          payroll.RunStatusDraft,
		})
		if err != nil {
			return err
		}

		pre, err := s.prefetch(txCtx, employees, periodStart, periodEnd, payDate)
		if err != nil {
			return err
		}

		items := make([]payroll.Item, len(employees))
		g := new(errgroup.Group)
		g.SetLimit(s.concurrency)
		for i, emp := range employees {
			i, emp := i, emp
			g.Go(func() error {
				items[i] = s.computeItem(calc, run, emp, pre)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if err := s.payrollRepo.CreateItems(txCtx, items); err != nil {
			return err
		}

		totalGross, totalDeductions, totalNet := decimal.Zero, decimal.Zero, decimal.Zero
		for _, item := range items {
			totalGross = totalGross.Add(item.GrossPay)
			totalDeductions = totalDeductions.Add(item.TotalDeductions)
			totalNet = totalNet.Add(item.NetPay)
		}

		run.Status = payroll.RunStatusCalculated
		run.TotalEmployees = len(items)
		run.TotalGrossPay = totalGross
		run.TotalDeductions = totalDeductions
		run.TotalNetPay = totalNet
		run.CalculationLog = &payroll.CalculationLog{
			CalculatedAt:    time.Now(),
			EmployeeCount:   len(items),
			TotalGrossPay:   totalGross,
			TotalDeductions: totalDeductions,
			TotalNetPay:     totalNet,
		}
		if err := s.payrollRepo.UpdateRunTotals(txCtx, run); err != nil {
			return err
		}

		summary = payroll.RunSummaryResponse{
			PayrollRunID: run.ID,
			Summary: payroll.RunSummary{
				TotalEmployees:  len(items),
				TotalGrossPay:   totalGross,
				TotalDeductions: totalDeductions,
				TotalNetPay:     totalNet,
			},
		}
		return nil
	})
	if err != nil {
		return payroll.RunSummaryResponse{}, err
	}

	s.logger.Info("payroll run calculated",
		slog.String("payroll_run_id", summary.PayrollRunID),
		slog.String("company_id", companyID),
		slog.Int("employees", summary.Summary.TotalEmployees),
	)

	return summary, nil
}

// prefetch bulk-loads everything the computation needs, one query per
// concern instead of one per employee. GOSI rate rows are resolved here too,
// deduplicated by hire-date cohort.
func (s *PayrollServiceImpl) prefetch(ctx context.Context, employees []employee.Employee, periodStart, periodEnd, payDate time.Time) (prefetched, error) {
	ids := make([]string, len(employees))
	for i, emp := range employees {
		ids[i] = emp.ID
	}

	allowances, err := s.allowanceRepo.GetActiveAssignmentsByEmployeeIDs(ctx, ids, periodEnd)
	if err != nil {
		return prefetched{}, err
	}
	records, err := s.attendanceRepo.GetByEmployeeIDsAndRange(ctx, ids, periodStart, periodEnd)
	if err != nil {
		return prefetched{}, err
	}
	loans, err := s.loanRepo.GetActiveByEmployeeIDs(ctx, ids)
	if err != nil {
		return prefetched{}, err
	}
	leaves, err := s.leaveRepo.GetApprovedByEmployeeIDsAndRange(ctx, ids, periodStart, periodEnd)
	if err != nil {
		return prefetched{}, err
	}

	rates := make(map[string]*gosi.RateSchedule, len(employees))
	cohortCache := make(map[string]*gosi.RateSchedule)
	for _, emp := range employees {
		cohort := fmt.Sprintf("%s|%t", emp.HireDate.Format(dateLayout), emp.IsSaudi)
		if cached, ok := cohortCache[cohort]; ok {
			rates[emp.ID] = cached
			continue
		}

		schedule, err := s.gosiRepo.GetRates(ctx, emp.HireDate, emp.IsSaudi, payDate)
		if err != nil {
			if !errors.Is(err, gosi.ErrRateScheduleNotFound) {
				return prefetched{}, err
			}
			s.logger.Warn("no gosi rate schedule for employee, using default rates",
				slog.String("employee_id", emp.ID),
				slog.String("hire_date", emp.HireDate.Format(dateLayout)),
				slog.Bool("is_saudi", emp.IsSaudi),
			)
			cohortCache[cohort] = nil
			rates[emp.ID] = nil
			continue
		}
		cohortCache[cohort] = &schedule
		rates[emp.ID] = &schedule
	}

	return prefetched{
		allowances: allowances,
		records:    records,
		loans:      loans,
		leaves:     leaves,
		rates:      rates,
	}, nil
}

// computeItem derives one employee's full payroll breakdown. Pure: reads
// only prefetched data.
func (s *PayrollServiceImpl) computeItem(calc *Calculator, run payroll.Run, emp employee.Employee, pre prefetched) payroll.Item {
	dailyHours := emp.WorkingHoursPerDay
	if dailyHours <= 0 {
		dailyHours = 8
	}

	workingDays := calc.WorkingDays(run.PayPeriodStart, run.PayPeriodEnd, emp.WorkingDaysPerWeek)
	workingHours := float64(workingDays) * dailyHours

	allowanceLines := calc.Allowances(pre.allowances[emp.ID], emp.BasicSalary)
	totalAllowances := SumAllowances(allowanceLines)

	overtime := calc.Overtime(pre.records[emp.ID], emp.BasicSalary, dailyHours, emp.WorkingDaysPerWeek)

	ramadanAdjustment := decimal.Zero
	if run.IsRamadanPeriod {
		ramadanAdjustment = calc.RamadanAdjustment(workingHours, dailyHours)
	}

	grossPay := emp.BasicSalary.
		Add(totalAllowances).
		Add(overtime.OvertimeAmount).
		Add(ramadanAdjustment)

	// Contributions are assessed on the full gross pay.
	gosiCalc := calc.GOSI(pre.rates[emp.ID], grossPay)

	loanDeductions := calc.LoanDeductions(pre.loans[emp.ID])
	leaveDeductions := calc.LeaveDeductions(pre.leaves[emp.ID], emp.BasicSalary)

	totalDeductions := gosiCalc.EmployeeContribution.Add(loanDeductions).Add(leaveDeductions)
	netPay := grossPay.Sub(totalDeductions)

	return payroll.Item{
		PayrollRunID:      run.ID,
		EmployeeID:        emp.ID,
		BasicSalary:       emp.BasicSalary,
		TotalAllowances:   totalAllowances,
		OvertimeHours:     overtime.OvertimeHours,
		OvertimeAmount:    overtime.OvertimeAmount,
		RamadanAdjustment: ramadanAdjustment,
		GrossPay:          grossPay,
		GOSIEmployee:      gosiCalc.EmployeeContribution,
		GOSIEmployer:      gosiCalc.EmployerContribution,
		LoanDeductions:    loanDeductions,
		LeaveDeductions:   leaveDeductions,
		TotalDeductions:   totalDeductions,
		NetPay:            netPay,
		WorkingDays:       workingDays,
		WorkingHours:      workingHours,
		Details: &payroll.ItemDetails{
			Allowances:     allowanceLines,
			Overtime:       overtime,
			GOSIRateSource: gosiCalc.RateSource,
			CalculatedAt:   time.Now(),
		},
	}
}

func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, id, companyID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	return toRunResponse(run), nil
}

func (s *PayrollServiceImpl) ListRuns(ctx context.Context, filter payroll.RunFilter) (payroll.ListRunsResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListRunsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	runs, total, err := s.payrollRepo.ListRuns(ctx, companyID, filter)
	if err != nil {
		return payroll.ListRunsResponse{}, err
	}

	responses := make([]payroll.RunResponse, len(runs))
	for i, run := range runs {
		responses[i] = toRunResponse(run)
	}

	return payroll.ListRunsResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) GetRunItems(ctx context.Context, runID string) ([]payroll.ItemResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// 404 on the run itself before touching items
	if _, err := s.payrollRepo.GetRunByID(ctx, runID, companyID); err != nil {
		return nil, err
	}

	items, err := s.payrollRepo.GetItemsByRunID(ctx, runID, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.ItemResponse, len(items))
	for i, item := range items {
		responses[i] = payroll.ItemResponse{
			ID:                item.ID,
			EmployeeID:        item.EmployeeID,
			EmployeeNumber:    item.EmployeeNumber,
			EmployeeName:      item.EmployeeName,
			BasicSalary:       item.BasicSalary,
			TotalAllowances:   item.TotalAllowances,
			OvertimeHours:     item.OvertimeHours,
			OvertimeAmount:    item.OvertimeAmount,
			RamadanAdjustment: item.RamadanAdjustment,
			GrossPay:          item.GrossPay,
			GOSIEmployee:      item.GOSIEmployee,
			GOSIEmployer:      item.GOSIEmployer,
			LoanDeductions:    item.LoanDeductions,
			LeaveDeductions:   item.LeaveDeductions,
			TotalDeductions:   item.TotalDeductions,
			NetPay:            item.NetPay,
			WorkingDays:       item.WorkingDays,
			WorkingHours:      item.WorkingHours,
		}
	}

	return responses, nil
}

func (s *PayrollServiceImpl) CalculateOvertime(ctx context.Context, req payroll.OvertimeRequest) (payroll.Overtime, error) {
	if err := req.Validate(); err != nil {
		return payroll.Overtime{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.Overtime{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payroll.Overtime{}, err
	}

	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)

	laborPolicy, err := s.policyRepo.GetEffective(ctx, companyID, end)
	if err != nil {
		return payroll.Overtime{}, err
	}

	records, err := s.attendanceRepo.GetByEmployeeAndRange(ctx, emp.ID, start, end)
	if err != nil {
		return payroll.Overtime{}, err
	}

	calc := NewCalculator(laborPolicy)
	return calc.Overtime(records, emp.BasicSalary, emp.WorkingHoursPerDay, emp.WorkingDaysPerWeek), nil
}

func (s *PayrollServiceImpl) ApplyRamadanAdjustments(ctx context.Context, req payroll.RamadanAdjustmentsRequest) (payroll.RamadanAdjustmentsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RamadanAdjustmentsResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RamadanAdjustmentsResponse{}, err
	}
	if req.CompanyID != companyID {
		return payroll.RamadanAdjustmentsResponse{}, auth.ErrCompanyForbidden
	}

	startDate, _ := time.Parse(dateLayout, req.RamadanStartDate)

	laborPolicy, err := s.policyRepo.GetEffective(ctx, companyID, startDate)
	if err != nil {
		return payroll.RamadanAdjustmentsResponse{}, err
	}
	calc := NewCalculator(laborPolicy)

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return payroll.RamadanAdjustmentsResponse{}, err
	}

	adjustments := make([]payroll.RamadanAdjustment, 0, len(employees))
	for _, emp := range employees {
		regularHours := emp.WorkingHoursPerDay
		if regularHours <= 0 {
			regularHours = 8
		}
		ramadanHours := calc.RamadanDailyHours(regularHours)

		// Monthly value of the reduced hours: the hourly rate over a 30-day
		// month times the daily shortfall, times 30 days.
		hourlyRate := emp.BasicSalary.Div(decimal.NewFromFloat(regularHours * float64(laborPolicy.MonthlyDivisorDays)))
		adjustmentAmount := hourlyRate.
			Mul(decimal.NewFromFloat(regularHours - ramadanHours)).
			Mul(decimal.NewFromInt(int64(laborPolicy.MonthlyDivisorDays)))

		adjustments = append(adjustments, payroll.RamadanAdjustment{
			EmployeeID:       emp.ID,
			RegularHours:     regularHours,
			RamadanHours:     ramadanHours,
			AdjustmentAmount: adjustmentAmount,
			EffectiveFrom:    req.RamadanStartDate,
			EffectiveTo:      req.RamadanEndDate,
		})
	}

	return payroll.RamadanAdjustmentsResponse{
		Adjustments:    adjustments,
		TotalEmployees: len(adjustments),
	}, nil
}

// Reconcile finishes runs that were interrupted between item persistence and
// the status flip. With transactional calculation this should find nothing;
// it exists to repair historical data and belt-and-braces failures.
func (s *PayrollServiceImpl) Reconcile(ctx context.Context) error {
	runs, err := s.payrollRepo.FindDraftRunsWithItems(ctx)
	if err != nil {
		return err
	}

	for _, run := range runs {
		items, err := s.payrollRepo.GetItemsByRunID(ctx, run.ID, run.CompanyID)
		if err != nil {
			return err
		}

		totalGross, totalDeductions, totalNet := decimal.Zero, decimal.Zero, decimal.Zero
		for _, item := range items {
			totalGross = totalGross.Add(item.GrossPay)
			totalDeductions = totalDeductions.Add(item.TotalDeductions)
			totalNet = totalNet.Add(item.NetPay)
		}

		run.Status = payroll.RunStatusCalculated
		run.TotalEmployees = len(items)
		run.TotalGrossPay = totalGross
		run.TotalDeductions = totalDeductions
		run.TotalNetPay = totalNet
		run.CalculationLog = &payroll.CalculationLog{
			CalculatedAt:    time.Now(),
			EmployeeCount:   len(items),
			TotalGrossPay:   totalGross,
			TotalDeductions: totalDeductions,
			TotalNetPay:     totalNet,
		}
		if err := s.payrollRepo.UpdateRunTotals(ctx, run); err != nil {
			return err
		}

		s.logger.Warn("reconciled stuck draft payroll run",
			slog.String("payroll_run_id", run.ID),
			slog.String("company_id", run.CompanyID),
			slog.Int("items", len(items)),
		)
	}

	return nil
}

func toRunResponse(run payroll.Run) payroll.RunResponse {
	return payroll.RunResponse{
		ID:              run.ID,
		CompanyID:       run.CompanyID,
		RunName:         run.RunName,
		PayPeriodStart:  run.PayPeriodStart.Format(dateLayout),
		PayPeriodEnd:    run.PayPeriodEnd.Format(dateLayout),
		PayDate:         run.PayDate.Format(dateLayout),
		IsRamadanPeriod: run.IsRamadanPeriod,
		Status:          string(run.Status),
		TotalEmployees:  run.TotalEmployees,
		TotalGrossPay:   run.TotalGrossPay,
		TotalDeductions: run.TotalDeductions,
		TotalNetPay:     run.TotalNetPay,
		CreatedAt:       run.CreatedAt.Format(time.RFC3339),
	}
}
