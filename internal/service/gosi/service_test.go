package gosi

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sanadhr/payroll-backend-go/internal/domain/auth"
	"github.com/sanadhr/payroll-backend-go/internal/domain/employee"
	"github.com/sanadhr/payroll-backend-go/internal/domain/gosi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGOSIRepo struct {
	logs []gosi.SyncLog
}

func (f *fakeGOSIRepo) GetRates(context.Context, time.Time, bool, time.Time) (gosi.RateSchedule, error) {
	return gosi.RateSchedule{}, gosi.ErrRateScheduleNotFound
}

func (f *fakeGOSIRepo) CreateSyncLog(_ context.Context, log gosi.SyncLog) (gosi.SyncLog, error) {
	log.ID = "sync-1"
	log.StartedAt = time.Now()
	f.logs = append(f.logs, log)
	return log, nil
}

func (f *fakeGOSIRepo) UpdateSyncLog(_ context.Context, log gosi.SyncLog) error {
	for i := range f.logs {
		if f.logs[i].ID == log.ID {
			f.logs[i] = log
			return nil
		}
	}
	return gosi.ErrSyncLogNotFound
}

type fakeEmployeeRepo struct {
	count int
}

func (f *fakeEmployeeRepo) GetByID(context.Context, string, string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(context.Context, string) ([]employee.Employee, error) {
	return make([]employee.Employee, f.count), nil
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

func TestSyncEmployeeData(t *testing.T) {
	repo := &fakeGOSIRepo{}
	svc := NewGOSIService(repo, &fakeEmployeeRepo{count: 7}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	result, err := svc.Sync(authedContext(t, "comp-1"), gosi.SyncRequest{
		CompanyID: "comp-1",
		SyncType:  "employee_data",
	})
	require.NoError(t, err)

	assert.Equal(t, "sync-1", result.SyncLogID)
	assert.Equal(t, 7, result.RecordsProcessed)
	assert.Equal(t, 7, result.RecordsSuccess)

	require.Len(t, repo.logs, 1)
	assert.Equal(t, gosi.SyncStatusCompleted, repo.logs[0].Status)
	assert.Equal(t, 0, repo.logs[0].RecordsFailed)
}

func TestSyncOtherTypesProcessNothing(t *testing.T) {
	repo := &fakeGOSIRepo{}
	svc := NewGOSIService(repo, &fakeEmployeeRepo{count: 7}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	result, err := svc.Sync(authedContext(t, "comp-1"), gosi.SyncRequest{
		CompanyID: "comp-1",
		SyncType:  "wage_data",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.RecordsProcessed)
}

func TestSyncRejectsUnknownType(t *testing.T) {
	svc := NewGOSIService(&fakeGOSIRepo{}, &fakeEmployeeRepo{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Sync(authedContext(t, "comp-1"), gosi.SyncRequest{
		CompanyID: "comp-1",
		SyncType:  "payment_data",
	})
	require.Error(t, err)
}

func TestSyncRejectsCompanyMismatch(t *testing.T) {
	svc := NewGOSIService(&fakeGOSIRepo{}, &fakeEmployeeRepo{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Sync(authedContext(t, "comp-1"), gosi.SyncRequest{
		CompanyID: "comp-2",
		SyncType:  "employee_data",
	})
	assert.ErrorIs(t, err, auth.ErrCompanyForbidden)
}
