package wps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/auth"
	"github.com/sanadhr/payroll-backend-go/internal/domain/payroll"
	"github.com/sanadhr/payroll-backend-go/internal/domain/wps"
)

const dateLayout = "2006-01-02"

type WPSServiceImpl struct {
	wpsRepo     wps.WPSRepository
	payrollRepo payroll.PayrollRepository
	logger      *slog.Logger
}

func NewWPSService(
	wpsRepo wps.WPSRepository,
	payrollRepo payroll.PayrollRepository,
	logger *slog.Logger,
) wps.WPSService {
	return &WPSServiceImpl{
		wpsRepo:     wpsRepo,
		payrollRepo: payrollRepo,
		logger:      logger,
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

// Generate builds the salary file rows for a calculated payroll run and
// records a pending submission. Every row must carry complete bank details;
// a single incomplete employee fails the whole file rather than producing a
// partial submission the bank would reject.
func (s *WPSServiceImpl) Generate(ctx context.Context, req wps.GenerateRequest) (wps.GenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return wps.GenerateResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return wps.GenerateResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, req.PayrollRunID, companyID)
	if err != nil {
		return wps.GenerateResponse{}, err
	}
	if run.Status == payroll.RunStatusDraft {
		return wps.GenerateResponse{}, payroll.ErrRunNotCalculated
	}

	items, err := s.payrollRepo.GetItemsByRunID(ctx, run.ID, companyID)
	if err != nil {
		return wps.GenerateResponse{}, err
	}
	if len(items) == 0 {
		return wps.GenerateResponse{}, wps.ErrEmptyPayrollRun
	}

	records := make([]wps.Record, 0, len(items))
	payDate := run.PayDate.Format(dateLayout)
	for _, item := range items {
		if item.EmployeeNumber == nil || item.NationalID == nil || item.IBAN == nil ||
			*item.EmployeeNumber == "" || *item.NationalID == "" || *item.IBAN == "" {
			return wps.GenerateResponse{}, fmt.Errorf("%w: employee %s", wps.ErrMissingBankDetails, item.EmployeeID)
		}
		name := ""
		if item.EmployeeName != nil {
			name = *item.EmployeeName
		}
		records = append(records, wps.Record{
			EmployeeNumber: *item.EmployeeNumber,
			EmployeeName:   name,
			NationalID:     *item.NationalID,
			IBAN:           *item.IBAN,
			NetSalary:      item.NetPay,
			PaymentDate:    payDate,
		})
	}

	fileName := fmt.Sprintf("WPS_%s_%s_%s.json",
		run.CompanyID,
		run.PayPeriodStart.Format(dateLayout),
		run.PayPeriodEnd.Format(dateLayout),
	)

	submission, err := s.wpsRepo.CreateSubmission(ctx, wps.Submission{
		CompanyID:    companyID,
		PayrollRunID: run.ID,
		FileName:     fileName,
		Status:       wps.SubmissionStatusPending,
		Records:      records,
	})
	if err != nil {
		return wps.GenerateResponse{}, err
	}

	s.logger.Info("wps file generated",
		slog.String("wps_submission_id", submission.ID),
		slog.String("payroll_run_id", run.ID),
		slog.Int("records", len(records)),
	)

	return wps.GenerateResponse{
		WPSSubmissionID: submission.ID,
		FileName:        fileName,
		RecordsCount:    len(records),
	}, nil
}

func (s *WPSServiceImpl) GetSubmission(ctx context.Context, id string) (wps.Submission, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return wps.Submission{}, err
	}

	return s.wpsRepo.GetSubmissionByID(ctx, id, companyID)
}
