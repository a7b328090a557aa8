package gosi

import (
	"context"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/auth"
	"github.com/sanadhr/payroll-backend-go/internal/domain/employee"
	"github.com/sanadhr/payroll-backend-go/internal/domain/gosi"
)

type GOSIServiceImpl struct {
	gosiRepo     gosi.GOSIRepository
	employeeRepo employee.EmployeeRepository
	logger       *slog.Logger
}

func NewGOSIService(
	gosiRepo gosi.GOSIRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) gosi.GOSIService {
	return &GOSIServiceImpl{
		gosiRepo:     gosiRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
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

// Sync runs one synchronization cycle against the GOSI portal. The portal
// integration is stubbed: employee_data counts active employees and marks
// them all synced; the other sync types process zero records. Every attempt
// leaves a sync log row either way.
func (s *GOSIServiceImpl) Sync(ctx context.Context, req gosi.SyncRequest) (gosi.SyncResponse, error) {
	if err := req.Validate(); err != nil {
		return gosi.SyncResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return gosi.SyncResponse{}, err
	}
	if req.CompanyID != companyID {
		return gosi.SyncResponse{}, auth.ErrCompanyForbidden
	}

	syncLog, err := s.gosiRepo.CreateSyncLog(ctx, gosi.SyncLog{
		CompanyID: companyID,
		SyncType:  req.SyncType,
		Status:    gosi.SyncStatusInProgress,
	})
	if err != nil {
		return gosi.SyncResponse{}, err
	}

	recordsProcessed, syncErr := s.runSync(ctx, companyID, req.SyncType)
	if syncErr != nil {
		detail := syncErr.Error()
		syncLog.Status = gosi.SyncStatusFailed
		syncLog.ErrorDetail = &detail
		if updErr := s.gosiRepo.UpdateSyncLog(ctx, syncLog); updErr != nil {
			s.logger.Error("failed to mark gosi sync as failed",
				slog.String("sync_log_id", syncLog.ID),
				slog.String("error", updErr.Error()),
			)
		}
		return gosi.SyncResponse{}, syncErr
	}

	syncLog.Status = gosi.SyncStatusCompleted
	syncLog.RecordsProcessed = recordsProcessed
	syncLog.RecordsSuccess = recordsProcessed
	syncLog.RecordsFailed = 0
	if err := s.gosiRepo.UpdateSyncLog(ctx, syncLog); err != nil {
		return gosi.SyncResponse{}, err
	}

	s.logger.Info("gosi sync completed",
		slog.String("sync_log_id", syncLog.ID),
		slog.String("sync_type", req.SyncType),
		slog.Int("records", recordsProcessed),
	)

	return gosi.SyncResponse{
		SyncLogID:        syncLog.ID,
		RecordsProcessed: recordsProcessed,
		RecordsSuccess:   recordsProcessed,
	}, nil
}

func (s *GOSIServiceImpl) runSync(ctx context.Context, companyID, syncType string) (int, error) {
	switch syncType {
	case "employee_data":
		employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
		if err != nil {
			return 0, err
		}
		return len(employees), nil
	default:
		// wage_data and contribution_data have no upstream yet
		return 0, nil
	}
}
